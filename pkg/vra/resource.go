package vra

import (
	"context"
	"fmt"
	"time"
)

// DestroyActionName is the catalog's name for the teardown action.
const DestroyActionName = "Destroy"

// Resource type identifiers that classify a resource as a virtual machine.
const (
	ResourceTypeVirtual = "Infrastructure.Virtual"
	ResourceTypeCloud   = "Infrastructure.Cloud"
)

// ResourceOperations is the minimal API surface a Resource needs to refresh
// its payload and submit action requests. The concrete resources client
// implements it; tests can substitute a fake.
type ResourceOperations interface {
	GetResourceData(ctx context.Context, id string) (*ResourcePayload, error)
	SubmitRequest(ctx context.Context, request *ResourceActionRequest) (*Request, error)
}

// ResourcePayload is the raw JSON document describing one provisioned
// resource. Only the key paths the accessors need are modeled as fields; the
// ResourceData literal tree is the escape hatch for everything else the
// service nests under a resource.
type ResourcePayload struct {
	ID              string        `json:"id"`
	IconID          string        `json:"iconId,omitempty"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	Status          string        `json:"status,omitempty"`
	RequestID       string        `json:"requestId,omitempty"`
	ResourceTypeRef *LabelRef     `json:"resourceTypeRef,omitempty"`
	CatalogItem     *LabelRef     `json:"catalogItem,omitempty"`
	Organization    *Organization `json:"organization,omitempty"`
	Owners          []Owner       `json:"owners,omitempty"`
	ParentResource  *LabelRef     `json:"parentResourceRef,omitempty"`
	Lease           *Lease        `json:"lease,omitempty"`
	DateCreated     *time.Time    `json:"dateCreated,omitempty"`
	LastUpdated     *time.Time    `json:"lastUpdated,omitempty"`
	ResourceData    *LiteralMap   `json:"resourceData,omitempty"`
	Operations      []Operation   `json:"operations,omitempty"`
}

// Owner identifies a principal that owns a resource.
type Owner struct {
	Type  string `json:"type,omitempty"`
	Ref   string `json:"ref"`
	Value string `json:"value,omitempty"`
}

// Lease describes the validity window of a provisioned resource.
type Lease struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Operation describes one lifecycle action available on a resource.
type Operation struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Type           string `json:"type,omitempty"`
	ExtensionID    string `json:"extensionId,omitempty"`
	ProviderTypeID string `json:"providerTypeId,omitempty"`
}

// NetworkInterface is one NIC of a virtual machine resource.
type NetworkInterface struct {
	Name       string `json:"name"       yaml:"name"`
	Address    string `json:"address"    yaml:"address"`
	MACAddress string `json:"macAddress" yaml:"macAddress"`
}

// ResourceActionRequest is the payload submitted to run an action against a
// resource.
type ResourceActionRequest struct {
	Type              string        `json:"@type"`
	ResourceRef       IDRef         `json:"resourceRef"`
	ResourceActionRef IDRef         `json:"resourceActionRef"`
	Organization      *Organization `json:"organization,omitempty"`
	State             string        `json:"state"`
	RequestNumber     int           `json:"requestNumber"`
	Reasons           string        `json:"reasons,omitempty"`
	RequestData       LiteralMap    `json:"requestData"`
}

// ResourceOptions selects how a Resource is constructed: by ID (triggers an
// immediate fetch) or from an already fetched payload (no fetch). Exactly
// one of the two must be set.
type ResourceOptions struct {
	ID   string
	Data *ResourcePayload
}

// Resource represents one provisioned catalog item, such as a virtual
// machine. All derived accessors read from the cached payload; Refresh
// reloads it from the service.
type Resource struct {
	ops  ResourceOperations
	id   string
	data *ResourcePayload
}

// NewResource constructs a Resource per opts. Supplying neither or both of
// ID and Data returns ErrResourceOptionsExclusive. The ID form fetches the
// payload immediately; the Data form defers fetching until an operation
// needs a section the payload does not carry.
func NewResource(ctx context.Context, ops ResourceOperations, opts ResourceOptions) (*Resource, error) {
	if (opts.ID == "") == (opts.Data == nil) {
		return nil, ErrResourceOptionsExclusive
	}

	resource := &Resource{ops: ops}

	if opts.Data != nil {
		resource.data = opts.Data
		resource.id = opts.Data.ID

		return resource, nil
	}

	resource.id = opts.ID

	err := resource.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	return resource, nil
}

// Refresh reloads the payload from the service. It is safe to call
// repeatedly; each call performs exactly one fetch.
func (r *Resource) Refresh(ctx context.Context) error {
	data, err := r.ops.GetResourceData(ctx, r.id)
	if err != nil {
		return fmt.Errorf("fetching resource %s: %w", r.id, err)
	}

	r.data = data
	if data.ID != "" {
		// Trust the identity the service reports over the lookup key.
		r.id = data.ID
	}

	return nil
}

// ID returns the resource identifier.
func (r *Resource) ID() string {
	return r.id
}

// Data returns the underlying payload.
func (r *Resource) Data() *ResourcePayload {
	return r.data
}

// Name returns the resource name, or "" when absent.
func (r *Resource) Name() string {
	return r.data.Name
}

// Description returns the resource description, or "" when absent.
func (r *Resource) Description() string {
	return r.data.Description
}

// Status returns the resource status, or "" when absent.
func (r *Resource) Status() string {
	return r.data.Status
}

// TenantID returns the owning tenant reference, or "" when absent.
func (r *Resource) TenantID() string {
	if r.data.Organization == nil {
		return ""
	}

	return r.data.Organization.TenantRef
}

// TenantName returns the owning tenant label, or "" when absent.
func (r *Resource) TenantName() string {
	if r.data.Organization == nil {
		return ""
	}

	return r.data.Organization.TenantLabel
}

// SubtenantID returns the owning business group reference, or "" when absent.
func (r *Resource) SubtenantID() string {
	if r.data.Organization == nil {
		return ""
	}

	return r.data.Organization.SubtenantRef
}

// SubtenantName returns the owning business group label, or "" when absent.
func (r *Resource) SubtenantName() string {
	if r.data.Organization == nil {
		return ""
	}

	return r.data.Organization.SubtenantLabel
}

// OwnerNames returns the display names of all resource owners in order.
func (r *Resource) OwnerNames() []string {
	if r.data.Owners == nil {
		return nil
	}

	names := make([]string, 0, len(r.data.Owners))
	for _, owner := range r.data.Owners {
		names = append(names, owner.Value)
	}

	return names
}

// CatalogItem returns the catalog item this resource was provisioned from,
// or nil when the payload carries none.
func (r *Resource) CatalogItem() *LabelRef {
	return r.data.CatalogItem
}

// MachineStatus returns the machine power status from the resource data
// section, or "" when absent.
func (r *Resource) MachineStatus() string {
	status, _ := r.data.ResourceData.GetString("MachineStatus")

	return status
}

// IsVM reports whether the resource's declared type classifies it as a
// virtual machine.
func (r *Resource) IsVM() bool {
	if r.data.ResourceTypeRef == nil {
		return false
	}

	switch r.data.ResourceTypeRef.ID {
	case ResourceTypeVirtual, ResourceTypeCloud:
		return true
	default:
		return false
	}
}

// NetworkInterfaces returns the VM's NICs in payload order. It returns nil
// for non-VM resources and when the payload has no network section; a VM
// with an empty network list yields an empty, non-nil slice. The nil/empty
// distinction is deliberate: nil means "no network information available".
func (r *Resource) NetworkInterfaces() []NetworkInterface {
	if !r.IsVM() {
		return nil
	}

	list := r.data.ResourceData.Get("NETWORK_LIST")
	if list == nil {
		return nil
	}

	nics := make([]NetworkInterface, 0, len(list.Items))

	for _, item := range list.Items {
		if item == nil || item.Values == nil {
			continue
		}

		var nic NetworkInterface
		nic.Name, _ = item.Values.GetString("NETWORK_NAME")
		nic.Address, _ = item.Values.GetString("NETWORK_ADDRESS")
		nic.MACAddress, _ = item.Values.GetString("NETWORK_MAC_ADDRESS")

		nics = append(nics, nic)
	}

	return nics
}

// IPAddresses returns the NIC addresses in interface order. It returns nil
// whenever NetworkInterfaces is nil, preserving the absent/empty
// distinction through the derivation chain.
func (r *Resource) IPAddresses() []string {
	nics := r.NetworkInterfaces()
	if nics == nil {
		return nil
	}

	addresses := make([]string, 0, len(nics))
	for _, nic := range nics {
		addresses = append(addresses, nic.Address)
	}

	return addresses
}

// Actions returns the lifecycle operations available on the resource. When
// the cached payload has no operations section the payload is refetched
// once; a payload that already embeds operations is served without any
// network call.
func (r *Resource) Actions(ctx context.Context) ([]Operation, error) {
	if r.data.Operations == nil {
		err := r.Refresh(ctx)
		if err != nil {
			return nil, err
		}
	}

	return r.data.Operations, nil
}

// ActionIDByName returns the identifier of the first action whose name
// equals name (case-sensitive exact match). It returns "" when no actions
// are available or none matches.
func (r *Resource) ActionIDByName(ctx context.Context, name string) (string, error) {
	actions, err := r.Actions(ctx)
	if err != nil {
		return "", err
	}

	for _, action := range actions {
		if action.Name == name {
			return action.ID, nil
		}
	}

	return "", nil
}

// Destroy submits the resource's destroy action and returns the resulting
// request handle. When the resource exposes no destroy action it fails with
// ErrActionNotFound without touching the network.
func (r *Resource) Destroy(ctx context.Context) (*Request, error) {
	actionID, err := r.ActionIDByName(ctx, DestroyActionName)
	if err != nil {
		return nil, err
	}

	if actionID == "" {
		return nil, fmt.Errorf("%w: no %q action for resource %s", ErrActionNotFound, DestroyActionName, r.id)
	}

	return r.SubmitActionRequest(ctx, actionID)
}

// SubmitActionRequest submits the given action against this resource and
// returns the request handle built from the response's location header.
func (r *Resource) SubmitActionRequest(ctx context.Context, actionID string) (*Request, error) {
	request, err := r.ops.SubmitRequest(ctx, r.ActionRequestPayload(actionID))
	if err != nil {
		return nil, fmt.Errorf("submitting action %s for resource %s: %w", actionID, r.id, err)
	}

	return request, nil
}

// ActionRequestPayload builds the submission payload for running actionID
// against this resource.
func (r *Resource) ActionRequestPayload(actionID string) *ResourceActionRequest {
	return &ResourceActionRequest{
		Type:              "ResourceActionRequest",
		ResourceRef:       IDRef{ID: r.id},
		ResourceActionRef: IDRef{ID: actionID},
		Organization:      r.data.Organization,
		State:             RequestStateSubmitted,
		RequestNumber:     0,
		RequestData:       LiteralMap{Entries: []LiteralEntry{}},
	}
}
