package driftpay

import (
	"context"
	"net/http"
	"net/url"
)

// CustomerBankAccount is a bank account belonging to a customer. Account
// numbers are never returned in full; only AccountNumberEnding is exposed.
type CustomerBankAccount struct {
	ID                  string                   `json:"id"`
	CreatedAt           string                   `json:"created_at"`
	AccountHolderName   string                   `json:"account_holder_name,omitempty"`
	AccountNumberEnding string                   `json:"account_number_ending,omitempty"`
	AccountType         string                   `json:"account_type,omitempty"`
	BankName            string                   `json:"bank_name,omitempty"`
	CountryCode         string                   `json:"country_code,omitempty"`
	Currency            string                   `json:"currency,omitempty"`
	Enabled             bool                     `json:"enabled"`
	Metadata            map[string]string        `json:"metadata,omitempty"`
	Links               CustomerBankAccountLinks `json:"links"`
}

type CustomerBankAccountLinks struct {
	Customer string `json:"customer,omitempty"`
}

// CustomerBankAccountCreateParams take either local bank details
// (AccountNumber plus BranchCode), an IBAN, or a CustomerBankAccountToken
// obtained from a bank details lookup flow.
type CustomerBankAccountCreateParams struct {
	AccountHolderName        string                         `json:"account_holder_name,omitempty"`
	AccountNumber            string                         `json:"account_number,omitempty"`
	AccountType              string                         `json:"account_type,omitempty"`
	BranchCode               string                         `json:"branch_code,omitempty"`
	BankCode                 string                         `json:"bank_code,omitempty"`
	IBAN                     string                         `json:"iban,omitempty"`
	CountryCode              string                         `json:"country_code,omitempty"`
	Currency                 string                         `json:"currency,omitempty"`
	CustomerBankAccountToken string                         `json:"customer_bank_account_token,omitempty"`
	Metadata                 map[string]string              `json:"metadata,omitempty"`
	Links                    CustomerBankAccountCreateLinks `json:"links"`
}

type CustomerBankAccountCreateLinks struct {
	Customer string `json:"customer"`
}

type CustomerBankAccountUpdateParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

type CustomerBankAccountListParams struct {
	ListParams
	// Customer restricts to accounts of one customer.
	Customer string
	Enabled  *bool
}

func (p CustomerBankAccountListParams) values() url.Values {
	v := p.ListParams.values()
	if p.Customer != "" {
		v.Set("customer", p.Customer)
	}
	if p.Enabled != nil {
		if *p.Enabled {
			v.Set("enabled", "true")
		} else {
			v.Set("enabled", "false")
		}
	}
	return v
}

type CustomerBankAccountList struct {
	CustomerBankAccounts []CustomerBankAccount
	Meta                 ListMeta
}

type CustomerBankAccountsService interface {
	Create(ctx context.Context, params CustomerBankAccountCreateParams, opts ...RequestOption) (*CustomerBankAccount, error)
	Get(ctx context.Context, id string) (*CustomerBankAccount, error)
	Update(ctx context.Context, id string, params CustomerBankAccountUpdateParams) (*CustomerBankAccount, error)
	List(ctx context.Context, params CustomerBankAccountListParams) (*CustomerBankAccountList, error)
	All(params CustomerBankAccountListParams) *Iterator[CustomerBankAccount]

	// Disable immediately ends all mandates on the account. A disabled
	// account cannot be re-enabled.
	Disable(ctx context.Context, id string, opts ...RequestOption) (*CustomerBankAccount, error)
}

type customerBankAccountsService struct {
	client *Client
}

type customerBankAccountEnvelope struct {
	errorEnvelope
	CustomerBankAccount *CustomerBankAccount `json:"customer_bank_accounts"`
}

type customerBankAccountListEnvelope struct {
	errorEnvelope
	CustomerBankAccounts []CustomerBankAccount `json:"customer_bank_accounts"`
	Meta                 ListMeta              `json:"meta"`
}

type customerBankAccountCreateRequest struct {
	CustomerBankAccounts CustomerBankAccountCreateParams `json:"customer_bank_accounts"`
}

type customerBankAccountUpdateRequest struct {
	CustomerBankAccounts CustomerBankAccountUpdateParams `json:"customer_bank_accounts"`
}

func (s *customerBankAccountsService) Create(ctx context.Context, params CustomerBankAccountCreateParams, opts ...RequestOption) (*CustomerBankAccount, error) {
	env := customerBankAccountEnvelope{}
	err := s.client.post(ctx, s.client.url("/customer_bank_accounts"), customerBankAccountCreateRequest{CustomerBankAccounts: params}, &env, opts...)
	if err != nil {
		if IsIdempotentCreationConflict(err) {
			if id := ConflictingResourceID(err); id != "" {
				return s.Get(ctx, id)
			}
		}
		return nil, err
	}
	return env.CustomerBankAccount, nil
}

func (s *customerBankAccountsService) Get(ctx context.Context, id string) (*CustomerBankAccount, error) {
	env := customerBankAccountEnvelope{}
	err := s.client.do(ctx, http.MethodGet, s.client.url("/customer_bank_accounts/%s", id), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.CustomerBankAccount, nil
}

func (s *customerBankAccountsService) Update(ctx context.Context, id string, params CustomerBankAccountUpdateParams) (*CustomerBankAccount, error) {
	env := customerBankAccountEnvelope{}
	err := s.client.do(ctx, http.MethodPut, s.client.url("/customer_bank_accounts/%s", id), customerBankAccountUpdateRequest{CustomerBankAccounts: params}, &env)
	if err != nil {
		return nil, err
	}
	return env.CustomerBankAccount, nil
}

func (s *customerBankAccountsService) List(ctx context.Context, params CustomerBankAccountListParams) (*CustomerBankAccountList, error) {
	env := customerBankAccountListEnvelope{}
	requestUrl := withQuery(s.client.url("/customer_bank_accounts"), params.values())
	err := s.client.do(ctx, http.MethodGet, requestUrl, nil, &env)
	if err != nil {
		return nil, err
	}
	return &CustomerBankAccountList{CustomerBankAccounts: env.CustomerBankAccounts, Meta: env.Meta}, nil
}

func (s *customerBankAccountsService) All(params CustomerBankAccountListParams) *Iterator[CustomerBankAccount] {
	return newIterator(params.After, func(ctx context.Context, after string) ([]CustomerBankAccount, ListMeta, error) {
		p := params
		p.After = after
		p.Before = ""
		list, err := s.List(ctx, p)
		if err != nil {
			return nil, ListMeta{}, err
		}
		return list.CustomerBankAccounts, list.Meta, nil
	})
}

func (s *customerBankAccountsService) Disable(ctx context.Context, id string, opts ...RequestOption) (*CustomerBankAccount, error) {
	env := customerBankAccountEnvelope{}
	err := s.client.post(ctx, s.client.url("/customer_bank_accounts/%s/actions/disable", id), nil, &env, opts...)
	if err != nil {
		return nil, err
	}
	return env.CustomerBankAccount, nil
}
