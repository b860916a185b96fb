package vra

import "time"

// CatalogItem describes one orderable item of the service catalog.
type CatalogItem struct {
	ID                    string        `json:"id"`
	Name                  string        `json:"name"`
	Description           string        `json:"description,omitempty"`
	Status                string        `json:"status,omitempty"`
	CatalogItemTypeRef    *LabelRef     `json:"catalogItemTypeRef,omitempty"`
	ServiceRef            *LabelRef     `json:"serviceRef,omitempty"`
	IconID                string        `json:"iconId,omitempty"`
	Organization          *Organization `json:"organization,omitempty"`
	OutputResourceTypeRef *LabelRef     `json:"outputResourceTypeRef,omitempty"`
	DateCreated           *time.Time    `json:"dateCreated,omitempty"`
	LastUpdated           *time.Time    `json:"lastUpdated,omitempty"`
	IsNoteworthy          bool          `json:"isNoteworthy,omitempty"`
}

// EntitledCatalogItem wraps a CatalogItem in the envelope the entitlement
// listing returns.
type EntitledCatalogItem struct {
	CatalogItem CatalogItem `json:"catalogItem"`
}

// CatalogItemRequest is the payload submitted to order a catalog item.
type CatalogItemRequest struct {
	Type           string        `json:"@type"`
	CatalogItemRef IDRef         `json:"catalogItemRef"`
	Organization   *Organization `json:"organization,omitempty"`
	RequestedFor   string        `json:"requestedFor,omitempty"`
	State          string        `json:"state"`
	RequestNumber  int           `json:"requestNumber"`
	Description    string        `json:"description,omitempty"`
	Reasons        string        `json:"reasons,omitempty"`
	RequestData    LiteralMap    `json:"requestData"`
}

// NewCatalogItemRequest builds a submission payload for item, seeded with
// the item's organization. Additional provisioning parameters can be added
// with SetParameter before submitting.
func NewCatalogItemRequest(item *CatalogItem) *CatalogItemRequest {
	request := &CatalogItemRequest{
		Type:           "CatalogItemRequest",
		CatalogItemRef: IDRef{ID: item.ID},
		Organization:   item.Organization,
		State:          RequestStateSubmitted,
		RequestNumber:  0,
		RequestData:    LiteralMap{Entries: []LiteralEntry{}},
	}

	return request
}

// SetParameter stores one provisioning parameter in the request data.
func (r *CatalogItemRequest) SetParameter(key string, value *Literal) *CatalogItemRequest {
	r.RequestData.Set(key, value)

	return r
}
