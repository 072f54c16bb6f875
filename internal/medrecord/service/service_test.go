package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"rutasegura/internal/dependent/models"
	"rutasegura/internal/dependent/store"
	"rutasegura/internal/medrecord/codec"
	dErrors "rutasegura/pkg/domain-errors"
)

const (
	guardianRUT  = "11111111-1"
	dependentRUT = "22222222-2"
)

func sealDocument(t *testing.T, pdf []byte, ownerRUT string) string {
	t.Helper()
	sealed, err := codec.Encrypt([]byte(base64.StdEncoding.EncodeToString(pdf)), ownerRUT)
	require.NoError(t, err)
	return sealed
}

func seedDependent(t *testing.T, dep *models.Dependent) *store.InMemory {
	t.Helper()
	mem := store.NewInMemory()
	require.NoError(t, mem.Put(context.Background(), dep))
	return mem
}

func TestFetchDecryptsDocument(t *testing.T) {
	pdf := []byte("%PDF-1.4 ficha")
	svc := New(seedDependent(t, &models.Dependent{
		RUT:         dependentRUT,
		FirstNames:  "Pedro",
		GuardianRUT: guardianRUT,
		MedicalRecord: &models.MedicalRecord{
			FileName:   "ficha_pedro.pdf",
			CipherText: sealDocument(t, pdf, guardianRUT),
		},
	}))

	doc, err := svc.Fetch(context.Background(), dependentRUT)
	require.NoError(t, err)
	require.Equal(t, "ficha_pedro.pdf", doc.FileName)
	require.True(t, strings.HasPrefix(doc.DataURI, "data:application/pdf;base64,"))
	require.Equal(t, codec.DataURI([]byte(base64.StdEncoding.EncodeToString(pdf))), doc.DataURI)
}

func TestFetchKeysOffRecordOwnerNotViewer(t *testing.T) {
	// The passphrase comes from the guardian stored on the record, so any
	// viewer holding the record opens the document. This is the driver
	// detail flow: the driver is never the owner.
	svc := New(seedDependent(t, &models.Dependent{
		RUT:         dependentRUT,
		GuardianRUT: guardianRUT,
		MedicalRecord: &models.MedicalRecord{
			CipherText: sealDocument(t, []byte("%PDF-1.4 ficha"), guardianRUT),
		},
	}))

	doc, err := svc.Fetch(context.Background(), dependentRUT)
	require.NoError(t, err)
	require.NotEmpty(t, doc.DataURI)
}

func TestFetchMissingDocument(t *testing.T) {
	svc := New(seedDependent(t, &models.Dependent{RUT: dependentRUT, GuardianRUT: guardianRUT}))

	_, err := svc.Fetch(context.Background(), dependentRUT)
	require.True(t, dErrors.HasCode(err, dErrors.CodeMissingDocument))
}

func TestFetchOwnerMismatchFailsToDecrypt(t *testing.T) {
	// Document sealed under a different guardian than the record claims,
	// as happens after a bad re-parenting. Deterministic, never retried.
	svc := New(seedDependent(t, &models.Dependent{
		RUT:         dependentRUT,
		GuardianRUT: "33333333-3",
		MedicalRecord: &models.MedicalRecord{
			CipherText: sealDocument(t, []byte("%PDF-1.4 ficha"), guardianRUT),
		},
	}))

	_, err := svc.Fetch(context.Background(), dependentRUT)
	require.True(t, dErrors.HasCode(err, dErrors.CodeDecryptionFailed))
}

func TestFetchWithoutOwnerOnRecord(t *testing.T) {
	svc := New(seedDependent(t, &models.Dependent{
		RUT: dependentRUT,
		MedicalRecord: &models.MedicalRecord{
			CipherText: sealDocument(t, []byte("%PDF-1.4 ficha"), guardianRUT),
		},
	}))

	_, err := svc.Fetch(context.Background(), dependentRUT)
	require.True(t, dErrors.HasCode(err, dErrors.CodeMissingIdentity))
}

func TestFetchUnknownDependent(t *testing.T) {
	svc := New(store.NewInMemory())

	_, err := svc.Fetch(context.Background(), dependentRUT)
	require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = svc.Fetch(context.Background(), "")
	require.True(t, dErrors.HasCode(err, dErrors.CodeMissingIdentity))
}
