package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"descore/internal/auth"
	"descore/internal/models"
	"descore/internal/services/vector"
)

func sp(s string) *string { return &s }

func containsFold(ss []string, v string) bool {
	v = strings.ToUpper(strings.TrimSpace(v))
	for _, s := range ss {
		if strings.ToUpper(strings.TrimSpace(s)) == v {
			return true
		}
	}
	return false
}

// minimal row so persistence and TXT rendering share one code path
type ioRow struct {
	Count      int
	KeyHex     string
	Plaintext  string
	Ciphertext string
	WeakKey    bool
}

// builds the TXT body for both ENCRYPT/DECRYPT sections reusing one
// code path; the header names the test mode so MCT downloads are
// self-identifying and can be refused by the validator
func buildTXT(algorithm, testMode string, enc, dec []ioRow, includeExpected bool) string {
	var b strings.Builder
	b.WriteString("# " + algorithm + " " + testMode + " single-block vectors\n\n")
	b.WriteString("[ENCRYPT]\n\n")
	for _, r := range enc {
		b.WriteString(fmt.Sprintf("COUNT = %d\n", r.Count))
		b.WriteString("KEY = " + strings.ToLower(r.KeyHex) + "\n")
		b.WriteString("PLAINTEXT = " + strings.ToLower(r.Plaintext) + "\n")
		if includeExpected && strings.TrimSpace(r.Ciphertext) != "" {
			b.WriteString("CIPHERTEXT = " + strings.ToLower(r.Ciphertext) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("[DECRYPT]\n\n")
	for _, r := range dec {
		b.WriteString(fmt.Sprintf("COUNT = %d\n", r.Count))
		b.WriteString("KEY = " + strings.ToLower(r.KeyHex) + "\n")
		b.WriteString("CIPHERTEXT = " + strings.ToLower(r.Ciphertext) + "\n")
		if includeExpected && strings.TrimSpace(r.Plaintext) != "" {
			b.WriteString("PLAINTEXT = " + strings.ToLower(r.Plaintext) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// persists ENCRYPT & DECRYPT rows in one place (transaction kept at call site)
func persistVectors(tx *gorm.DB, reqUserID, reqClientID, algorithm, testMode, katVariant string, enc, dec []ioRow) error {
	for _, e := range enc {
		row := models.Vector{
			UserID:     reqUserID,
			ClientID:   reqClientID,
			Algorithm:  algorithm,
			TestMode:   testMode,
			KatVariant: katVariant,
			Direction:  "ENCRYPT",
			KeyHex:     strings.ToLower(e.KeyHex),
			InputHex:   sp(strings.ToLower(e.Plaintext)),
			OutputHex:  sp(strings.ToLower(e.Ciphertext)),
			WeakKey:    e.WeakKey,
			Status:     "ready",
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	for _, d := range dec {
		row := models.Vector{
			UserID:     reqUserID,
			ClientID:   reqClientID,
			Algorithm:  algorithm,
			TestMode:   testMode,
			KatVariant: katVariant,
			Direction:  "DECRYPT",
			KeyHex:     strings.ToLower(d.KeyHex),
			InputHex:   sp(strings.ToLower(d.Ciphertext)),
			OutputHex:  sp(strings.ToLower(d.Plaintext)),
			WeakKey:    d.WeakKey,
			Status:     "ready",
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// POST /v1/cryptography/vectors
func GenerateVectorsByParams(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	type reqT struct {
		Algorithm string `json:"algorithm"`
		TestMode  string `json:"test_mode"`

		// When KAT, selects the KAT subtype: gfsbox | keysbox | varkey | vartxt
		InputMode       string `json:"input_mode"`
		Count           int    `json:"count"`
		IncludeExpected bool   `json:"include_expected"`
		Format          string `json:"format"`
		UserID          string `json:"user_id"`
		ClientID        string `json:"client_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req reqT
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// UUID validations
		if err := uuid.Validate(req.UserID); err != nil {
			http.Error(w, "user_id must be a valid UUID", http.StatusBadRequest)
			return
		}
		if err := uuid.Validate(req.ClientID); err != nil {
			http.Error(w, "client_id must be a valid UUID", http.StatusBadRequest)
			return
		}

		alg := strings.ToUpper(strings.TrimSpace(req.Algorithm))
		tmode := strings.ToUpper(strings.TrimSpace(req.TestMode))
		variant := strings.ToUpper(strings.TrimSpace(req.InputMode))

		if alg == "" || tmode == "" {
			http.Error(w, "algorithm and test_mode are required", http.StatusBadRequest)
			return
		}
		if alg != "DES" {
			http.Error(w, "algorithm not implemented yet", http.StatusNotImplemented)
			return
		}

		// Client & User existence
		var exists bool
		if err := db.Model(&models.Client{}).
			Select("count(*) > 0").Where("id = ?", req.ClientID).Find(&exists).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !exists {
			http.Error(w, "client_id does not exist", http.StatusUnprocessableEntity)
			return
		}

		if err := db.Model(&models.User{}).
			Select("count(*) > 0").Where("id = ?", req.UserID).Find(&exists).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !exists {
			http.Error(w, "user_id does not exist", http.StatusUnprocessableEntity)
			return
		}

		// Lookup cryptography catalogue and validate combination
		var cat models.Cryptography
		if err := db.Where("upper(algorithm) = ?", alg).First(&cat).Error; err != nil {
			http.Error(w, "algorithm not found in catalogue", http.StatusBadRequest)
			return
		}

		var testModes []string
		var katVariants []string
		if b, err := json.Marshal(cat.TestModes); err == nil {
			_ = json.Unmarshal(b, &testModes)
		}
		if b, err := json.Marshal(cat.KatVariants); err == nil {
			_ = json.Unmarshal(b, &katVariants)
		}
		if len(testModes) == 0 {
			testModes = []string{"KAT", "MCT"}
		}
		if len(katVariants) == 0 {
			katVariants = []string{"GFSBOX", "KEYSBOX", "VARKEY", "VARTXT"}
		}

		if !containsFold(testModes, tmode) {
			sort.Strings(testModes)
			http.Error(w, fmt.Sprintf("invalid test_mode for %s. allowed: %v", cat.Algorithm, testModes), http.StatusBadRequest)
			return
		}
		if tmode == "KAT" && !containsFold(katVariants, variant) {
			sort.Strings(katVariants)
			http.Error(w, fmt.Sprintf("for DES KAT, input_mode must be one of %v", katVariants), http.StatusBadRequest)
			return
		}

		vec, err := vector.GenerateDESTestVectors(tmode, vector.DESGenParams{
			Count:           req.Count,
			IncludeExpected: req.IncludeExpected,
			KatVariant:      variant,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// Normalize for reuse
		enc := make([]ioRow, 0, len(vec.Encrypt))
		for _, rec := range vec.Encrypt {
			enc = append(enc, ioRow{rec.Count, rec.KeyHex, rec.Plaintext, rec.Ciphertext, rec.WeakKey})
		}
		dec := make([]ioRow, 0, len(vec.Decrypt))
		for _, rec := range vec.Decrypt {
			dec = append(dec, ioRow{rec.Count, rec.KeyHex, rec.Plaintext, rec.Ciphertext, rec.WeakKey})
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			return persistVectors(tx, req.UserID, req.ClientID, vec.Algorithm, vec.TestMode, variant, enc, dec)
		}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		md, _ := json.Marshal(map[string]any{"algorithm": vec.Algorithm, "test_mode": vec.TestMode, "input_mode": variant, "records": len(enc) + len(dec)})
		_ = db.Create(&models.AuditLog{UserID: &req.UserID, ClientID: &req.ClientID, Action: "VECTOR_GENERATE", Metadata: models.JSONB(md)}).Error

		if strings.ToLower(req.Format) == "txt" {
			txt := buildTXT(vec.Algorithm, vec.TestMode, enc, dec, req.IncludeExpected)
			w.Header().Set("Content-Type", "text/plain")
			w.Header().Set("Content-Disposition",
				fmt.Sprintf("attachment; filename=des_%s.txt", strings.ToLower(vec.TestMode)))
			_, _ = w.Write([]byte(txt))
			return
		}

		respondJSON(w, vec)
	}
}

// POST /v1/clients/{client_id}/vectors/validate/des
func ValidateDES(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.Subject(r.Context())
		clientID := chi.URLParam(r, "client_id")
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "multipart parse error", http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer file.Close()
		recs, err := vector.ParseDESVectorFile(file)
		if err != nil {
			http.Error(w, "parse error: "+err.Error(), http.StatusBadRequest)
			return
		}
		result, err := vector.ValidateDES(recs)
		if err != nil {
			http.Error(w, "validate error: "+err.Error(), http.StatusBadRequest)
			return
		}
		md, _ := json.Marshal(map[string]any{"algorithm": "DES", "result": result})
		_ = db.Create(&models.AuditLog{UserID: &uid, ClientID: &clientID, Action: "VALIDATE_DES", Metadata: models.JSONB(md)}).Error
		respondJSON(w, result)
	}
}
