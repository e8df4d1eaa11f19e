package driftpay

import (
	"context"
	"net/http"
	"net/url"
)

// Customer is a person or company that payments are collected from.
type Customer struct {
	ID                    string            `json:"id"`
	CreatedAt             string            `json:"created_at"`
	Email                 string            `json:"email,omitempty"`
	GivenName             string            `json:"given_name,omitempty"`
	FamilyName            string            `json:"family_name,omitempty"`
	CompanyName           string            `json:"company_name,omitempty"`
	AddressLine1          string            `json:"address_line1,omitempty"`
	AddressLine2          string            `json:"address_line2,omitempty"`
	AddressLine3          string            `json:"address_line3,omitempty"`
	City                  string            `json:"city,omitempty"`
	Region                string            `json:"region,omitempty"`
	PostalCode            string            `json:"postal_code,omitempty"`
	CountryCode           string            `json:"country_code,omitempty"`
	Language              string            `json:"language,omitempty"`
	PhoneNumber           string            `json:"phone_number,omitempty"`
	DanishIdentityNumber  string            `json:"danish_identity_number,omitempty"`
	SwedishIdentityNumber string            `json:"swedish_identity_number,omitempty"`
	Metadata              map[string]string `json:"metadata,omitempty"`
}

type CustomerCreateParams struct {
	Email                 string            `json:"email,omitempty"`
	GivenName             string            `json:"given_name,omitempty"`
	FamilyName            string            `json:"family_name,omitempty"`
	CompanyName           string            `json:"company_name,omitempty"`
	AddressLine1          string            `json:"address_line1,omitempty"`
	AddressLine2          string            `json:"address_line2,omitempty"`
	AddressLine3          string            `json:"address_line3,omitempty"`
	City                  string            `json:"city,omitempty"`
	Region                string            `json:"region,omitempty"`
	PostalCode            string            `json:"postal_code,omitempty"`
	CountryCode           string            `json:"country_code,omitempty"`
	Language              string            `json:"language,omitempty"`
	PhoneNumber           string            `json:"phone_number,omitempty"`
	DanishIdentityNumber  string            `json:"danish_identity_number,omitempty"`
	SwedishIdentityNumber string            `json:"swedish_identity_number,omitempty"`
	Metadata              map[string]string `json:"metadata,omitempty"`
}

type CustomerUpdateParams struct {
	Email        string            `json:"email,omitempty"`
	GivenName    string            `json:"given_name,omitempty"`
	FamilyName   string            `json:"family_name,omitempty"`
	CompanyName  string            `json:"company_name,omitempty"`
	AddressLine1 string            `json:"address_line1,omitempty"`
	AddressLine2 string            `json:"address_line2,omitempty"`
	AddressLine3 string            `json:"address_line3,omitempty"`
	City         string            `json:"city,omitempty"`
	Region       string            `json:"region,omitempty"`
	PostalCode   string            `json:"postal_code,omitempty"`
	CountryCode  string            `json:"country_code,omitempty"`
	Language     string            `json:"language,omitempty"`
	PhoneNumber  string            `json:"phone_number,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type CustomerListParams struct {
	ListParams
	// Currency restricts to customers with mandates in this currency.
	Currency string
	// SortField is one of name, company_name or created_at.
	SortField string
	// SortDirection is asc or desc.
	SortDirection string
}

func (p CustomerListParams) values() url.Values {
	v := p.ListParams.values()
	if p.Currency != "" {
		v.Set("currency", p.Currency)
	}
	if p.SortField != "" {
		v.Set("sort_field", p.SortField)
	}
	if p.SortDirection != "" {
		v.Set("sort_direction", p.SortDirection)
	}
	return v
}

// CustomerList is one page of customers.
type CustomerList struct {
	Customers []Customer
	Meta      ListMeta
}

type CustomersService interface {
	// Create a customer. Safe to retry: when the idempotency key was
	// already used, the customer created by the first attempt is returned.
	Create(ctx context.Context, params CustomerCreateParams, opts ...RequestOption) (*Customer, error)

	// Get a single customer by id.
	Get(ctx context.Context, id string) (*Customer, error)

	// Update a customer. Omitted fields are left unchanged.
	Update(ctx context.Context, id string, params CustomerUpdateParams) (*Customer, error)

	// List one page of customers.
	List(ctx context.Context, params CustomerListParams) (*CustomerList, error)

	// All iterates every customer matching params, page by page.
	All(params CustomerListParams) *Iterator[Customer]

	// Remove an unused customer. Fails with invalid_state once the customer
	// has mandates or payments.
	Remove(ctx context.Context, id string) error
}

type customersService struct {
	client *Client
}

type customerEnvelope struct {
	errorEnvelope
	Customer *Customer `json:"customers"`
}

type customerListEnvelope struct {
	errorEnvelope
	Customers []Customer `json:"customers"`
	Meta      ListMeta   `json:"meta"`
}

type customerCreateRequest struct {
	Customers CustomerCreateParams `json:"customers"`
}

type customerUpdateRequest struct {
	Customers CustomerUpdateParams `json:"customers"`
}

func (s *customersService) Create(ctx context.Context, params CustomerCreateParams, opts ...RequestOption) (*Customer, error) {
	env := customerEnvelope{}
	err := s.client.post(ctx, s.client.url("/customers"), customerCreateRequest{Customers: params}, &env, opts...)
	if err != nil {
		if IsIdempotentCreationConflict(err) {
			if id := ConflictingResourceID(err); id != "" {
				return s.Get(ctx, id)
			}
		}
		return nil, err
	}
	return env.Customer, nil
}

func (s *customersService) Get(ctx context.Context, id string) (*Customer, error) {
	env := customerEnvelope{}
	err := s.client.do(ctx, http.MethodGet, s.client.url("/customers/%s", id), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.Customer, nil
}

func (s *customersService) Update(ctx context.Context, id string, params CustomerUpdateParams) (*Customer, error) {
	env := customerEnvelope{}
	err := s.client.do(ctx, http.MethodPut, s.client.url("/customers/%s", id), customerUpdateRequest{Customers: params}, &env)
	if err != nil {
		return nil, err
	}
	return env.Customer, nil
}

func (s *customersService) List(ctx context.Context, params CustomerListParams) (*CustomerList, error) {
	env := customerListEnvelope{}
	requestUrl := withQuery(s.client.url("/customers"), params.values())
	err := s.client.do(ctx, http.MethodGet, requestUrl, nil, &env)
	if err != nil {
		return nil, err
	}
	return &CustomerList{Customers: env.Customers, Meta: env.Meta}, nil
}

func (s *customersService) All(params CustomerListParams) *Iterator[Customer] {
	return newIterator(params.After, func(ctx context.Context, after string) ([]Customer, ListMeta, error) {
		p := params
		p.After = after
		p.Before = ""
		list, err := s.List(ctx, p)
		if err != nil {
			return nil, ListMeta{}, err
		}
		return list.Customers, list.Meta, nil
	})
}

func (s *customersService) Remove(ctx context.Context, id string) error {
	env := customerEnvelope{}
	return s.client.do(ctx, http.MethodDelete, s.client.url("/customers/%s", id), nil, &env)
}
