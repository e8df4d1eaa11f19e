package driftpay

import (
	"context"
)

// BankDetailsLookup validates bank details and reports which debit schemes
// they can be charged through. Lookups are not persisted and have no id.
type BankDetailsLookup struct {
	AvailableDebitSchemes []string `json:"available_debit_schemes"`
	BankName              string   `json:"bank_name,omitempty"`
	BIC                   string   `json:"bic,omitempty"`
}

// BankDetailsLookupParams take either local details (AccountNumber,
// BranchCode, CountryCode) or an IBAN.
type BankDetailsLookupParams struct {
	AccountNumber string `json:"account_number,omitempty"`
	BranchCode    string `json:"branch_code,omitempty"`
	CountryCode   string `json:"country_code,omitempty"`
	IBAN          string `json:"iban,omitempty"`
}

type BankDetailsLookupsService interface {
	Create(ctx context.Context, params BankDetailsLookupParams, opts ...RequestOption) (*BankDetailsLookup, error)
}

type bankDetailsLookupsService struct {
	client *Client
}

type bankDetailsLookupEnvelope struct {
	errorEnvelope
	BankDetailsLookup *BankDetailsLookup `json:"bank_details_lookups"`
}

type bankDetailsLookupCreateRequest struct {
	BankDetailsLookups BankDetailsLookupParams `json:"bank_details_lookups"`
}

func (s *bankDetailsLookupsService) Create(ctx context.Context, params BankDetailsLookupParams, opts ...RequestOption) (*BankDetailsLookup, error) {
	env := bankDetailsLookupEnvelope{}
	err := s.client.post(ctx, s.client.url("/bank_details_lookups"), bankDetailsLookupCreateRequest{BankDetailsLookups: params}, &env, opts...)
	if err != nil {
		return nil, err
	}
	return env.BankDetailsLookup, nil
}
