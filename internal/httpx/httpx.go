package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxUploadBytes bounds multipart photo uploads.
const MaxUploadBytes = 10 << 20

var ErrMissingFile = errors.New("missing file")

// DecodeJSON reads a single JSON object. Unknown fields are ignored so
// admin forms can send back whole records.
func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

func ValidationDetails(errs validator.ValidationErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field()] = err.Tag()
	}
	return details
}

type Upload struct {
	Filename string
	Data     []byte
}

// ReadUpload reads the named multipart file field, capped at MaxUploadBytes.
func ReadUpload(w http.ResponseWriter, r *http.Request, field string) (Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		return Upload{}, fmt.Errorf("parse multipart: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return Upload{}, ErrMissingFile
		}
		return Upload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		return Upload{}, err
	}
	if len(data) > MaxUploadBytes {
		return Upload{}, errors.New("file too large")
	}
	if len(data) == 0 {
		return Upload{}, ErrMissingFile
	}

	return Upload{
		Filename: header.Filename,
		Data:     data,
	}, nil
}

// ReadStatus takes the target status from the "statut" query parameter or,
// when absent, from a JSON body {"statut": "..."}.
func ReadStatus(r *http.Request) (string, error) {
	if v := r.URL.Query().Get("statut"); v != "" {
		return v, nil
	}
	var body struct {
		Status string `json:"statut"`
	}
	if err := DecodeJSON(r.Body, &body); err != nil {
		return "", err
	}
	return body.Status, nil
}
