// Package models defines the canonical Alert schema and the normalization
// layer that absorbs the field-name variants written by older producers.
package models

import (
	"encoding/json"

	dErrors "rutasegura/pkg/domain-errors"
)

// Alert kinds observed across producers. The field is free-form; these
// constants only name the values the service itself reads or writes.
const (
	KindTraffic     = "trafico"
	KindVehicle     = "vehicular"
	KindChildIssue  = "problemas niño"
	KindSchoolDelay = "demora colegio"
	KindEmergency   = "Emergencia"
	KindPostulation = "postulacion"
)

// RouteChatValidation is the screen an emergency-contact alert resumes into.
const RouteChatValidation = "/chat-validacion"

// Route parameter keys for the chat-validation screen. These travel verbatim
// to the mobile client, so the legacy names are load-bearing.
const (
	ParamGuardianRUT  = "rutPadre"
	ParamDriverRUT    = "rutConductor"
	ParamDependentRUT = "rutHijo"
)

// Alert is one append-only notification record. Alerts are never mutated
// after creation; Read is advisory only and never gates visibility.
//
// Invariants:
//   - Kind and Description are non-empty at creation
//   - TargetRUT empty means broadcast to every feed reader of the audience
//   - TargetRUT set means visible only to that identity
type Alert struct {
	ID          string            `json:"id,omitempty"`
	Kind        string            `json:"kind"`
	Description string            `json:"description"`
	CreatedAt   Timestamp         `json:"createdAt"`
	TargetRUT   string            `json:"targetUserId,omitempty"`
	DriverRUT   string            `json:"driverId,omitempty"`
	Route       string            `json:"route,omitempty"`
	RouteParams map[string]string `json:"routeParams,omitempty"`
	Read        *bool             `json:"read,omitempty"`
}

// Validate enforces creation invariants.
func (a *Alert) Validate() error {
	if a.Kind == "" {
		return dErrors.New(dErrors.CodeValidation, "alert kind is required")
	}
	if a.Description == "" {
		return dErrors.New(dErrors.CodeValidation, "alert description is required")
	}
	return nil
}

// VisibleTo implements the visibility invariant: a broadcast alert is
// visible to everyone, a targeted alert only to its addressee.
func (a *Alert) VisibleTo(rut string) bool {
	return a.TargetRUT == "" || a.TargetRUT == rut
}

// alertDoc mirrors every field-name variant found in the stored collection.
// Canonical names win when both are present.
type alertDoc struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	TipoAlerta  string `json:"tipoAlerta"`
	Description string `json:"description"`
	Descripcion string `json:"descripcion"`

	CreatedAt Timestamp `json:"createdAt"`
	Fecha     Timestamp `json:"fecha"`
	CreadoEn  Timestamp `json:"creadoEn"`

	TargetUserID    string `json:"targetUserId"`
	RutDestinatario string `json:"rutDestinatario"`

	DriverID     string `json:"driverId"`
	RutConductor string `json:"rutConductor"`

	Route       string `json:"route"`
	RutaDestino string `json:"rutaDestino"`

	RouteParams map[string]string `json:"routeParams"`
	Parametros  map[string]string `json:"parametros"`

	Read  *bool `json:"read"`
	Leida *bool `json:"leida"`
}

// UnmarshalJSON normalizes either field-name dialect into the canonical
// shape. This is the single normalization point at the store boundary;
// nothing above the store ever sees the legacy names.
func (a *Alert) UnmarshalJSON(data []byte) error {
	var doc alertDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*a = Alert{
		ID:          doc.ID,
		Kind:        firstNonEmpty(doc.Kind, doc.TipoAlerta),
		Description: firstNonEmpty(doc.Description, doc.Descripcion),
		CreatedAt:   firstTimestamp(doc.CreatedAt, doc.Fecha, doc.CreadoEn),
		TargetRUT:   firstNonEmpty(doc.TargetUserID, doc.RutDestinatario),
		DriverRUT:   firstNonEmpty(doc.DriverID, doc.RutConductor),
		Route:       firstNonEmpty(doc.Route, doc.RutaDestino),
		RouteParams: doc.RouteParams,
		Read:        doc.Read,
	}
	if a.RouteParams == nil {
		a.RouteParams = doc.Parametros
	}
	if a.Read == nil {
		a.Read = doc.Leida
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

func firstTimestamp(values ...Timestamp) Timestamp {
	for _, v := range values {
		if !v.IsZero() {
			return v
		}
	}
	return Timestamp{}
}
