package driftpay

import (
	"context"
	"net/http"
	"net/url"
)

// Creditor is the organisation money is collected for. Most API accounts
// have exactly one.
type Creditor struct {
	ID                 string             `json:"id"`
	CreatedAt          string             `json:"created_at"`
	Name               string             `json:"name,omitempty"`
	AddressLine1       string             `json:"address_line1,omitempty"`
	AddressLine2       string             `json:"address_line2,omitempty"`
	AddressLine3       string             `json:"address_line3,omitempty"`
	City               string             `json:"city,omitempty"`
	Region             string             `json:"region,omitempty"`
	PostalCode         string             `json:"postal_code,omitempty"`
	CountryCode        string             `json:"country_code,omitempty"`
	LogoURL            string             `json:"logo_url,omitempty"`
	VerificationStatus string             `json:"verification_status,omitempty"`
	CanCreateRefunds   bool               `json:"can_create_refunds"`
	SchemeIdentifiers  []SchemeIdentifier `json:"scheme_identifiers,omitempty"`
	Links              CreditorLinks      `json:"links"`
}

// SchemeIdentifier is how the creditor appears on customers' bank statements
// within one debit scheme.
type SchemeIdentifier struct {
	Name          string `json:"name"`
	Scheme        string `json:"scheme"`
	Reference     string `json:"reference"`
	CanSpecifyOwn bool   `json:"can_specify_own"`
}

type CreditorLinks struct {
	DefaultEURPayoutAccount string `json:"default_eur_payout_account,omitempty"`
	DefaultGBPPayoutAccount string `json:"default_gbp_payout_account,omitempty"`
	DefaultSEKPayoutAccount string `json:"default_sek_payout_account,omitempty"`
}

type CreditorCreateParams struct {
	Name         string            `json:"name"`
	AddressLine1 string            `json:"address_line1,omitempty"`
	AddressLine2 string            `json:"address_line2,omitempty"`
	AddressLine3 string            `json:"address_line3,omitempty"`
	City         string            `json:"city,omitempty"`
	Region       string            `json:"region,omitempty"`
	PostalCode   string            `json:"postal_code,omitempty"`
	CountryCode  string            `json:"country_code,omitempty"`
	Links        map[string]string `json:"links,omitempty"`
}

type CreditorUpdateParams struct {
	Name         string            `json:"name,omitempty"`
	AddressLine1 string            `json:"address_line1,omitempty"`
	AddressLine2 string            `json:"address_line2,omitempty"`
	AddressLine3 string            `json:"address_line3,omitempty"`
	City         string            `json:"city,omitempty"`
	Region       string            `json:"region,omitempty"`
	PostalCode   string            `json:"postal_code,omitempty"`
	CountryCode  string            `json:"country_code,omitempty"`
	Links        map[string]string `json:"links,omitempty"`
}

type CreditorListParams struct {
	ListParams
}

func (p CreditorListParams) values() url.Values {
	return p.ListParams.values()
}

type CreditorList struct {
	Creditors []Creditor
	Meta      ListMeta
}

type CreditorsService interface {
	Create(ctx context.Context, params CreditorCreateParams, opts ...RequestOption) (*Creditor, error)
	Get(ctx context.Context, id string) (*Creditor, error)
	Update(ctx context.Context, id string, params CreditorUpdateParams) (*Creditor, error)
	List(ctx context.Context, params CreditorListParams) (*CreditorList, error)
	All(params CreditorListParams) *Iterator[Creditor]
}

type creditorsService struct {
	client *Client
}

type creditorEnvelope struct {
	errorEnvelope
	Creditor *Creditor `json:"creditors"`
}

type creditorListEnvelope struct {
	errorEnvelope
	Creditors []Creditor `json:"creditors"`
	Meta      ListMeta   `json:"meta"`
}

type creditorCreateRequest struct {
	Creditors CreditorCreateParams `json:"creditors"`
}

type creditorUpdateRequest struct {
	Creditors CreditorUpdateParams `json:"creditors"`
}

func (s *creditorsService) Create(ctx context.Context, params CreditorCreateParams, opts ...RequestOption) (*Creditor, error) {
	env := creditorEnvelope{}
	err := s.client.post(ctx, s.client.url("/creditors"), creditorCreateRequest{Creditors: params}, &env, opts...)
	if err != nil {
		if IsIdempotentCreationConflict(err) {
			if id := ConflictingResourceID(err); id != "" {
				return s.Get(ctx, id)
			}
		}
		return nil, err
	}
	return env.Creditor, nil
}

func (s *creditorsService) Get(ctx context.Context, id string) (*Creditor, error) {
	env := creditorEnvelope{}
	err := s.client.do(ctx, http.MethodGet, s.client.url("/creditors/%s", id), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.Creditor, nil
}

func (s *creditorsService) Update(ctx context.Context, id string, params CreditorUpdateParams) (*Creditor, error) {
	env := creditorEnvelope{}
	err := s.client.do(ctx, http.MethodPut, s.client.url("/creditors/%s", id), creditorUpdateRequest{Creditors: params}, &env)
	if err != nil {
		return nil, err
	}
	return env.Creditor, nil
}

func (s *creditorsService) List(ctx context.Context, params CreditorListParams) (*CreditorList, error) {
	env := creditorListEnvelope{}
	requestUrl := withQuery(s.client.url("/creditors"), params.values())
	err := s.client.do(ctx, http.MethodGet, requestUrl, nil, &env)
	if err != nil {
		return nil, err
	}
	return &CreditorList{Creditors: env.Creditors, Meta: env.Meta}, nil
}

func (s *creditorsService) All(params CreditorListParams) *Iterator[Creditor] {
	return newIterator(params.After, func(ctx context.Context, after string) ([]Creditor, ListMeta, error) {
		p := params
		p.After = after
		p.Before = ""
		list, err := s.List(ctx, p)
		if err != nil {
			return nil, ListMeta{}, err
		}
		return list.Creditors, list.Meta, nil
	})
}
