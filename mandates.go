package driftpay

import (
	"context"
	"net/http"
	"net/url"
)

// MandateStatus is the lifecycle state of a mandate within its scheme.
type MandateStatus string

const (
	MandateStatusPendingSubmission MandateStatus = "pending_submission"
	MandateStatusSubmitted         MandateStatus = "submitted"
	MandateStatusActive            MandateStatus = "active"
	MandateStatusFailed            MandateStatus = "failed"
	MandateStatusCancelled         MandateStatus = "cancelled"
	MandateStatusExpired           MandateStatus = "expired"
)

// Mandate is a customer's authorisation to debit their bank account under a
// given scheme.
type Mandate struct {
	ID                      string            `json:"id"`
	CreatedAt               string            `json:"created_at"`
	Reference               string            `json:"reference,omitempty"`
	Scheme                  string            `json:"scheme,omitempty"`
	Status                  MandateStatus     `json:"status,omitempty"`
	NextPossibleChargeDate  string            `json:"next_possible_charge_date,omitempty"`
	PaymentsRequireApproval bool              `json:"payments_require_approval"`
	Metadata                map[string]string `json:"metadata,omitempty"`
	Links                   MandateLinks      `json:"links"`
}

type MandateLinks struct {
	Creditor            string `json:"creditor,omitempty"`
	Customer            string `json:"customer,omitempty"`
	CustomerBankAccount string `json:"customer_bank_account,omitempty"`
	NewMandate          string `json:"new_mandate,omitempty"`
}

type MandateCreateParams struct {
	// Reference is a scheme-specific mandate reference. Generated when
	// omitted.
	Reference      string             `json:"reference,omitempty"`
	Scheme         string             `json:"scheme,omitempty"`
	PayerIPAddress string             `json:"payer_ip_address,omitempty"`
	Metadata       map[string]string  `json:"metadata,omitempty"`
	Links          MandateCreateLinks `json:"links"`
}

type MandateCreateLinks struct {
	CustomerBankAccount string `json:"customer_bank_account"`
	Creditor            string `json:"creditor,omitempty"`
}

type MandateUpdateParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

// MandateCancelParams and MandateReinstateParams carry optional metadata
// stored on the generated event.
type MandateCancelParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

type MandateReinstateParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

type MandateListParams struct {
	ListParams
	Customer            string
	CustomerBankAccount string
	Creditor            string
	Reference           string
	// Status filters by one or more lifecycle states.
	Status []MandateStatus
}

func (p MandateListParams) values() url.Values {
	v := p.ListParams.values()
	if p.Customer != "" {
		v.Set("customer", p.Customer)
	}
	if p.CustomerBankAccount != "" {
		v.Set("customer_bank_account", p.CustomerBankAccount)
	}
	if p.Creditor != "" {
		v.Set("creditor", p.Creditor)
	}
	if p.Reference != "" {
		v.Set("reference", p.Reference)
	}
	for _, s := range p.Status {
		v.Add("status", string(s))
	}
	return v
}

type MandateList struct {
	Mandates []Mandate
	Meta     ListMeta
}

type MandatesService interface {
	Create(ctx context.Context, params MandateCreateParams, opts ...RequestOption) (*Mandate, error)
	Get(ctx context.Context, id string) (*Mandate, error)
	Update(ctx context.Context, id string, params MandateUpdateParams) (*Mandate, error)
	List(ctx context.Context, params MandateListParams) (*MandateList, error)
	All(params MandateListParams) *Iterator[Mandate]

	// Cancel stops all future payments against the mandate. Cancelling an
	// already cancelled or expired mandate fails with invalid_state.
	Cancel(ctx context.Context, id string, params MandateCancelParams, opts ...RequestOption) (*Mandate, error)

	// Reinstate asks the scheme to re-establish a cancelled or expired
	// mandate. Not all schemes support it.
	Reinstate(ctx context.Context, id string, params MandateReinstateParams, opts ...RequestOption) (*Mandate, error)
}

type mandatesService struct {
	client *Client
}

type mandateEnvelope struct {
	errorEnvelope
	Mandate *Mandate `json:"mandates"`
}

type mandateListEnvelope struct {
	errorEnvelope
	Mandates []Mandate `json:"mandates"`
	Meta     ListMeta  `json:"meta"`
}

type mandateCreateRequest struct {
	Mandates MandateCreateParams `json:"mandates"`
}

type mandateUpdateRequest struct {
	Mandates MandateUpdateParams `json:"mandates"`
}

type mandateCancelRequest struct {
	Data MandateCancelParams `json:"data"`
}

type mandateReinstateRequest struct {
	Data MandateReinstateParams `json:"data"`
}

func (s *mandatesService) Create(ctx context.Context, params MandateCreateParams, opts ...RequestOption) (*Mandate, error) {
	env := mandateEnvelope{}
	err := s.client.post(ctx, s.client.url("/mandates"), mandateCreateRequest{Mandates: params}, &env, opts...)
	if err != nil {
		if IsIdempotentCreationConflict(err) {
			if id := ConflictingResourceID(err); id != "" {
				return s.Get(ctx, id)
			}
		}
		return nil, err
	}
	return env.Mandate, nil
}

func (s *mandatesService) Get(ctx context.Context, id string) (*Mandate, error) {
	env := mandateEnvelope{}
	err := s.client.do(ctx, http.MethodGet, s.client.url("/mandates/%s", id), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.Mandate, nil
}

func (s *mandatesService) Update(ctx context.Context, id string, params MandateUpdateParams) (*Mandate, error) {
	env := mandateEnvelope{}
	err := s.client.do(ctx, http.MethodPut, s.client.url("/mandates/%s", id), mandateUpdateRequest{Mandates: params}, &env)
	if err != nil {
		return nil, err
	}
	return env.Mandate, nil
}

func (s *mandatesService) List(ctx context.Context, params MandateListParams) (*MandateList, error) {
	env := mandateListEnvelope{}
	requestUrl := withQuery(s.client.url("/mandates"), params.values())
	err := s.client.do(ctx, http.MethodGet, requestUrl, nil, &env)
	if err != nil {
		return nil, err
	}
	return &MandateList{Mandates: env.Mandates, Meta: env.Meta}, nil
}

func (s *mandatesService) All(params MandateListParams) *Iterator[Mandate] {
	return newIterator(params.After, func(ctx context.Context, after string) ([]Mandate, ListMeta, error) {
		p := params
		p.After = after
		p.Before = ""
		list, err := s.List(ctx, p)
		if err != nil {
			return nil, ListMeta{}, err
		}
		return list.Mandates, list.Meta, nil
	})
}

func (s *mandatesService) Cancel(ctx context.Context, id string, params MandateCancelParams, opts ...RequestOption) (*Mandate, error) {
	env := mandateEnvelope{}
	err := s.client.post(ctx, s.client.url("/mandates/%s/actions/cancel", id), mandateCancelRequest{Data: params}, &env, opts...)
	if err != nil {
		return nil, err
	}
	return env.Mandate, nil
}

func (s *mandatesService) Reinstate(ctx context.Context, id string, params MandateReinstateParams, opts ...RequestOption) (*Mandate, error) {
	env := mandateEnvelope{}
	err := s.client.post(ctx, s.client.url("/mandates/%s/actions/reinstate", id), mandateReinstateRequest{Data: params}, &env, opts...)
	if err != nil {
		return nil, err
	}
	return env.Mandate, nil
}
