// Package models defines dependent records and their embedded medical
// document, normalizing legacy field names at the store boundary the same
// way the alert collection does.
package models

import "encoding/json"

// MedicalRecord is the encrypted document embedded on a dependent record.
// CipherText present means a document exists; absent means "no document on
// file", which is a different user-facing state than a decryption failure.
type MedicalRecord struct {
	FileName   string `json:"fileName,omitempty"`
	CipherText string `json:"cipherText,omitempty"`
}

// Exists reports whether a document is on file.
func (m *MedicalRecord) Exists() bool {
	return m != nil && m.CipherText != ""
}

// Dependent is a minor associated with one guardian. The medical record is
// created once by an external upload flow, read many times here, never
// rotated.
type Dependent struct {
	RUT           string         `json:"rut"`
	FirstNames    string         `json:"firstNames,omitempty"`
	LastNames     string         `json:"lastNames,omitempty"`
	School        string         `json:"school,omitempty"`
	GuardianRUT   string         `json:"guardianId,omitempty"`
	MedicalRecord *MedicalRecord `json:"medicalRecord,omitempty"`
}

// DisplayName is the short name used in alert text.
func (d *Dependent) DisplayName() string {
	if d.FirstNames != "" {
		return d.FirstNames
	}
	return d.RUT
}

type medicalRecordDoc struct {
	FileName      string `json:"fileName"`
	NombreArchivo string `json:"nombreArchivo"`

	CipherText       string `json:"cipherText"`
	ContenidoCifrado string `json:"contenidoCifrado"`
}

type dependentDoc struct {
	RUT        string `json:"rut"`
	FirstNames string `json:"firstNames"`
	Nombres    string `json:"nombres"`
	LastNames  string `json:"lastNames"`
	Apellidos  string `json:"apellidos"`
	School     string `json:"school"`
	Colegio    string `json:"colegio"`

	GuardianID   string `json:"guardianId"`
	RutUsuario   string `json:"rutUsuario"`
	RutApoderado string `json:"rutApoderado"`

	MedicalRecord *medicalRecordDoc `json:"medicalRecord"`
	FichaMedica   *medicalRecordDoc `json:"fichaMedica"`
}

// UnmarshalJSON normalizes either field-name dialect into the canonical
// shape. Guardian ownership appears under three names across producers;
// canonical wins, then rutUsuario, then rutApoderado.
func (d *Dependent) UnmarshalJSON(data []byte) error {
	var doc dependentDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*d = Dependent{
		RUT:         doc.RUT,
		FirstNames:  firstNonEmpty(doc.FirstNames, doc.Nombres),
		LastNames:   firstNonEmpty(doc.LastNames, doc.Apellidos),
		School:      firstNonEmpty(doc.School, doc.Colegio),
		GuardianRUT: firstNonEmpty(doc.GuardianID, doc.RutUsuario, doc.RutApoderado),
	}
	record := doc.MedicalRecord
	if record == nil {
		record = doc.FichaMedica
	}
	if record != nil {
		d.MedicalRecord = &MedicalRecord{
			FileName:   firstNonEmpty(record.FileName, record.NombreArchivo),
			CipherText: firstNonEmpty(record.CipherText, record.ContenidoCifrado),
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
