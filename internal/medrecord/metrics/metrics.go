// Package metrics instruments medical document retrieval.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for document retrieval.
type Metrics struct {
	DocumentsOpened    prometheus.Counter
	DecryptionFailures prometheus.Counter
}

// New creates a new Metrics instance with all document metrics registered.
func New() *Metrics {
	return &Metrics{
		DocumentsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rutasegura_medical_documents_opened_total",
			Help: "Total number of medical documents decrypted and served",
		}),
		DecryptionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rutasegura_medical_document_decryption_failures_total",
			Help: "Total number of medical documents that failed to decrypt",
		}),
	}
}

// IncrementDocumentOpened records a document served to a guardian.
func (m *Metrics) IncrementDocumentOpened() {
	m.DocumentsOpened.Inc()
}

// IncrementDecryptionFailure records a document that failed to decrypt.
func (m *Metrics) IncrementDecryptionFailure() {
	m.DecryptionFailures.Inc()
}
