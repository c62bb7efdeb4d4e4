// Package plaid is a typed client for the legacy Plaid banking-data API.
//
// Every public operation maps to one remote endpoint and returns a result
// envelope: remote business errors (bad credentials, locked account,
// institution down) come back inside the result, never as a returned Go
// error. Returned errors are reserved for the fatal cases — bad caller
// arguments, transport failures, and response shapes the client cannot
// interpret. Check IsError before trusting any other field of a result.
package plaid

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PlaidClient is the full operation surface of the client, one method per
// remote endpoint.
type PlaidClient interface {
	AddUser(ctx context.Context, username, password string, institution InstitutionType, opts *AddUserOptions) (*AddUserResult, error)
	AuthenticateUser(ctx context.Context, token AccessToken, answers []string, opts *StepOptions) (*AddUserResult, error)
	AuthenticateUserWithDelivery(ctx context.Context, token AccessToken, delivery DeliveryType, opts *StepOptions) (*AddUserResult, error)
	AuthenticateUserWithDevice(ctx context.Context, token AccessToken, deviceMask string, opts *StepOptions) (*AddUserResult, error)
	UpdateUser(ctx context.Context, token AccessToken, username, password string, opts *UpdateUserOptions) (*AddUserResult, error)
	DeleteUser(ctx context.Context, token AccessToken) (*Result[bool], error)
	GetTransactions(ctx context.Context, token AccessToken, opts *TransactionOptions) (*TransactionResult, error)
	GetAccountBalance(ctx context.Context, token AccessToken) (*Result[[]Account], error)
	GetAuthAccountData(ctx context.Context, token AccessToken) (*Result[[]Account], error)
	ExchangeToken(ctx context.Context, publicToken, accountID string) (*TokenExchangeResult, error)
	GetCategories(ctx context.Context) (*Result[[]Category], error)
	GetCategory(ctx context.Context, id string) (*Result[Category], error)
	GetInstitutions(ctx context.Context) (*Result[[]Institution], error)
	GetInstitution(ctx context.Context, id string) (*Result[Institution], error)
}

// Client implements PlaidClient. It holds only immutable configuration and
// is safe for concurrent use.
type Client struct {
	clientID  string
	secret    string
	transport Transport
	logger    *zap.Logger
}

var _ PlaidClient = (*Client)(nil)

type clientOptions struct {
	transport Transport
	timeout   time.Duration
	logger    *zap.Logger
}

type Option func(*clientOptions)

// WithTransport swaps the HTTP transport, e.g. for a canned test double.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) { o.transport = t }
}

// WithTimeout sets the per-request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithLogger attaches a logger. The default is a nop logger; the client
// logs at debug level only.
func WithLogger(l *zap.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// New builds a client against the given service base URL with the
// credentials Plaid issued for this integration.
func New(serviceURL, clientID, secret string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("%w: client id is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: secret is required", ErrInvalidArgument)
	}

	options := clientOptions{timeout: defaultTimeout, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&options)
	}

	if options.transport == nil {
		transport, err := NewHTTPTransport(serviceURL, options.timeout, options.logger)
		if err != nil {
			return nil, err
		}
		options.transport = transport
	}

	return &Client{
		clientID:  clientID,
		secret:    secret,
		transport: options.transport,
		logger:    options.logger,
	}, nil
}

// AddUser links a user's institution credentials and returns either a ready
// session, a pending MFA challenge, or a business error.
func (c *Client) AddUser(ctx context.Context, username, password string, institution InstitutionType, opts *AddUserOptions) (*AddUserResult, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidArgument)
	}
	if institution == "" {
		return nil, fmt.Errorf("%w: institution is required", ErrInvalidArgument)
	}

	api := APIConnect
	pin := ""
	if opts != nil {
		if opts.API != "" {
			api = opts.API
		}
		pin = opts.Pin
	}
	if err := validateAPI(api); err != nil {
		return nil, err
	}

	req := addUserRequest{
		plaidRequest: c.baseRequest(""),
		Username:     username,
		Password:     password,
		Pin:          pin,
		Type:         string(institution),
		Options:      newAddUserOptionsRequest(opts),
	}

	status, raw, err := c.transport.Do(ctx, http.MethodPost, string(api), req)
	if err != nil {
		return nil, err
	}
	return c.processUserResponse(status, raw)
}

// AuthenticateUser answers a pending MFA challenge with one or more answer
// values. Multiple answers must be given in the order the questions were
// asked.
func (c *Client) AuthenticateUser(ctx context.Context, token AccessToken, answers []string, opts *StepOptions) (*AddUserResult, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidArgument)
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: at least one mfa answer is required", ErrInvalidArgument)
	}

	req := stepRequest{plaidRequest: c.baseRequest(token)}
	if len(answers) == 1 {
		req.MFA = answers[0]
	} else {
		req.MFA = answers
	}
	return c.stepUser(ctx, req, opts)
}

// AuthenticateUserWithDelivery asks the service to send the MFA code over
// the chosen delivery channel. The service replies with a fresh device
// challenge.
func (c *Client) AuthenticateUserWithDelivery(ctx context.Context, token AccessToken, delivery DeliveryType, opts *StepOptions) (*AddUserResult, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidArgument)
	}
	if delivery == "" {
		return nil, fmt.Errorf("%w: delivery type is required", ErrInvalidArgument)
	}

	req := stepRequest{plaidRequest: c.baseRequest(token)}
	req.Options = &stepOptionsRequest{SendMethod: map[string]string{"type": string(delivery)}}
	return c.stepUser(ctx, req, opts)
}

// AuthenticateUserWithDevice asks the service to send the MFA code to the
// device matching the given mask from the code delivery option list.
func (c *Client) AuthenticateUserWithDevice(ctx context.Context, token AccessToken, deviceMask string, opts *StepOptions) (*AddUserResult, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(deviceMask) == "" {
		return nil, fmt.Errorf("%w: device mask is required", ErrInvalidArgument)
	}

	req := stepRequest{plaidRequest: c.baseRequest(token)}
	req.Options = &stepOptionsRequest{SendMethod: map[string]string{"mask": deviceMask}}
	return c.stepUser(ctx, req, opts)
}

func (c *Client) stepUser(ctx context.Context, req stepRequest, opts *StepOptions) (*AddUserResult, error) {
	api := APIConnect
	method := http.MethodPost
	if opts != nil {
		if opts.API != "" {
			api = opts.API
		}
		if opts.IsUpdate {
			method = http.MethodPatch
		}
	}
	if err := validateAPI(api); err != nil {
		return nil, err
	}

	status, raw, err := c.transport.Do(ctx, method, string(api)+"/step", req)
	if err != nil {
		return nil, err
	}
	return c.processUserResponse(status, raw)
}

// UpdateUser rotates a user's stored credentials, or just the webhook when
// only UpdateUserOptions.WebhookURL is given.
func (c *Client) UpdateUser(ctx context.Context, token AccessToken, username, password string, opts *UpdateUserOptions) (*AddUserResult, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidArgument)
	}

	api := APIConnect
	pin, webhook := "", ""
	if opts != nil {
		if opts.API != "" {
			api = opts.API
		}
		pin = opts.Pin
		webhook = opts.WebhookURL
	}
	if err := validateAPI(api); err != nil {
		return nil, err
	}
	if (strings.TrimSpace(username) == "" || password == "") && webhook == "" {
		return nil, fmt.Errorf("%w: username and password are required unless only updating the webhook", ErrInvalidArgument)
	}

	req := updateUserRequest{
		plaidRequest: c.baseRequest(token),
		Username:     username,
		Password:     password,
		Pin:          pin,
	}
	if webhook != "" {
		req.Options = &updateOptionsRequest{Webhook: webhook}
	}

	status, raw, err := c.transport.Do(ctx, http.MethodPatch, string(api), req)
	if err != nil {
		return nil, err
	}
	return c.processUserResponse(status, raw)
}

// DeleteUser removes the user behind the access token. Success is derived
// from the 200 status alone; the service sends no success body to model.
func (c *Client) DeleteUser(ctx context.Context, token AccessToken) (*Result[bool], error) {
	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidArgument)
	}

	status, raw, err := c.transport.Do(ctx, http.MethodDelete, string(APIConnect), c.baseRequest(token))
	if err != nil {
		return nil, err
	}

	result := &Result[bool]{Value: status == http.StatusOK}
	if status != http.StatusOK {
		remoteErr, err := parseErrorResponse(status, raw)
		if err != nil {
			return nil, err
		}
		result.Err = remoteErr
	}
	return result, nil
}

// GetTransactions pulls transactions for the user, optionally filtered by
// account, pending state and an inclusive date range.
func (c *Client) GetTransactions(ctx context.Context, token AccessToken, opts *TransactionOptions) (*TransactionResult, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidArgument)
	}

	req := transactionsRequest{plaidRequest: c.baseRequest(token)}
	if opts != nil && (opts.AccountID != "" || opts.Pending != nil || opts.StartDate != nil || opts.EndDate != nil) {
		req.Options = &transactionOptionsRequest{
			Account: opts.AccountID,
			Pending: opts.Pending,
			GTE:     newWireDate(opts.StartDate),
			LTE:     newWireDate(opts.EndDate),
		}
	}

	status, raw, err := c.transport.Do(ctx, http.MethodPost, "connect/get", req)
	if err != nil {
		return nil, err
	}

	result := &TransactionResult{}
	if status == http.StatusOK {
		var resp addUserResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("plaid: decode transactions response: %w", err)
		}
		if resp.Accounts != nil {
			result.Accounts = toAccounts(resp.Accounts)
		}
		if resp.Transactions != nil {
			result.Transactions = toTransactions(resp.Transactions)
		}
		return result, nil
	}

	remoteErr, err := parseErrorResponse(status, raw)
	if err != nil {
		return nil, err
	}
	result.Err = remoteErr
	return result, nil
}

// GetAccountBalance fetches the user's accounts with current balances.
func (c *Client) GetAccountBalance(ctx context.Context, token AccessToken) (*Result[[]Account], error) {
	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidArgument)
	}

	status, raw, err := c.transport.Do(ctx, http.MethodGet, "balance", c.baseRequest(token))
	if err != nil {
		return nil, err
	}
	return c.accountsResult(status, raw)
}

// GetAuthAccountData fetches the user's accounts with routing data from the
// auth product.
func (c *Client) GetAuthAccountData(ctx context.Context, token AccessToken) (*Result[[]Account], error) {
	if token == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidArgument)
	}

	status, raw, err := c.transport.Do(ctx, http.MethodPost, "auth/get", c.baseRequest(token))
	if err != nil {
		return nil, err
	}
	return c.accountsResult(status, raw)
}

// accountsResult narrows the shared user-flow success shape down to its
// account list, discarding transactions.
func (c *Client) accountsResult(status int, raw []byte) (*Result[[]Account], error) {
	userResult, err := c.processUserResponse(status, raw)
	if err != nil {
		return nil, err
	}
	return &Result[[]Account]{Value: userResult.Accounts, Err: userResult.Err}, nil
}

// ExchangeToken trades a public token from the Link module for an access
// token and a Stripe bank account token.
func (c *Client) ExchangeToken(ctx context.Context, publicToken, accountID string) (*TokenExchangeResult, error) {
	if strings.TrimSpace(publicToken) == "" {
		return nil, fmt.Errorf("%w: public token is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(accountID) == "" {
		return nil, fmt.Errorf("%w: account id is required", ErrInvalidArgument)
	}

	req := exchangeTokenRequest{
		plaidRequest: c.baseRequest(""),
		PublicToken:  publicToken,
		AccountID:    accountID,
	}

	status, raw, err := c.transport.Do(ctx, http.MethodPost, "exchange_token", req)
	if err != nil {
		return nil, err
	}

	result := &TokenExchangeResult{}
	if status == http.StatusOK {
		var resp exchangeTokenResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("plaid: decode exchange token response: %w", err)
		}
		result.AccessToken = AccessToken(resp.AccessToken)
		result.BankAccountToken = resp.BankToken
		return result, nil
	}

	remoteErr, err := parseErrorResponse(status, raw)
	if err != nil {
		return nil, err
	}
	result.Err = remoteErr
	return result, nil
}

// GetCategories lists every transaction category in Plaid's taxonomy.
func (c *Client) GetCategories(ctx context.Context) (*Result[[]Category], error) {
	status, raw, err := c.transport.Do(ctx, http.MethodGet, "categories", nil)
	if err != nil {
		return nil, err
	}

	result := &Result[[]Category]{}
	if status == http.StatusOK {
		var resp []categoryResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("plaid: decode categories response: %w", err)
		}
		result.Value = make([]Category, len(resp))
		for i := range resp {
			result.Value[i] = resp[i].toCategory()
		}
		return result, nil
	}

	remoteErr, err := parseErrorResponse(status, raw)
	if err != nil {
		return nil, err
	}
	result.Err = remoteErr
	return result, nil
}

// GetCategory looks up a single category by id.
func (c *Client) GetCategory(ctx context.Context, id string) (*Result[Category], error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: category id is required", ErrInvalidArgument)
	}

	status, raw, err := c.transport.Do(ctx, http.MethodGet, "categories/"+id, nil)
	if err != nil {
		return nil, err
	}

	result := &Result[Category]{}
	if status == http.StatusOK {
		var resp categoryResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("plaid: decode category response: %w", err)
		}
		result.Value = resp.toCategory()
		return result, nil
	}

	remoteErr, err := parseErrorResponse(status, raw)
	if err != nil {
		return nil, err
	}
	result.Err = remoteErr
	return result, nil
}

// GetInstitutions lists every institution the service supports.
func (c *Client) GetInstitutions(ctx context.Context) (*Result[[]Institution], error) {
	status, raw, err := c.transport.Do(ctx, http.MethodGet, "institutions", nil)
	if err != nil {
		return nil, err
	}

	result := &Result[[]Institution]{}
	if status == http.StatusOK {
		var resp []institutionResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("plaid: decode institutions response: %w", err)
		}
		result.Value = make([]Institution, len(resp))
		for i := range resp {
			result.Value[i] = resp[i].toInstitution()
		}
		return result, nil
	}

	remoteErr, err := parseErrorResponse(status, raw)
	if err != nil {
		return nil, err
	}
	result.Err = remoteErr
	return result, nil
}

// GetInstitution looks up a single institution by id.
func (c *Client) GetInstitution(ctx context.Context, id string) (*Result[Institution], error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: institution id is required", ErrInvalidArgument)
	}

	status, raw, err := c.transport.Do(ctx, http.MethodGet, "institutions/"+id, nil)
	if err != nil {
		return nil, err
	}

	result := &Result[Institution]{}
	if status == http.StatusOK {
		var resp institutionResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("plaid: decode institution response: %w", err)
		}
		result.Value = resp.toInstitution()
		return result, nil
	}

	remoteErr, err := parseErrorResponse(status, raw)
	if err != nil {
		return nil, err
	}
	result.Err = remoteErr
	return result, nil
}

func (c *Client) baseRequest(token AccessToken) plaidRequest {
	return plaidRequest{ClientID: c.clientID, Secret: c.secret, AccessToken: string(token)}
}

// processUserResponse is the shared three-way classifier for the user
// flows: 200 is definitive success, 201 is success with a pending MFA
// challenge, anything else carries an error body.
func (c *Client) processUserResponse(status int, raw []byte) (*AddUserResult, error) {
	result := &AddUserResult{}

	switch status {
	case http.StatusCreated:
		var resp mfaResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("plaid: decode mfa response: %w", err)
		}
		prompt, err := resp.toAuthenticationPrompt()
		if err != nil {
			return nil, err
		}
		result.AccessToken = AccessToken(resp.AccessToken)
		result.AuthPrompt = prompt
		c.logger.Debug("plaid mfa challenge", zap.String("auth_type", string(prompt.Type)))

	case http.StatusOK:
		var resp addUserResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("plaid: decode user response: %w", err)
		}
		result.AccessToken = AccessToken(resp.AccessToken)
		if resp.Accounts != nil {
			result.Accounts = toAccounts(resp.Accounts)
		}
		if resp.Transactions != nil {
			result.Transactions = toTransactions(resp.Transactions)
		}

	default:
		remoteErr, err := parseErrorResponse(status, raw)
		if err != nil {
			return nil, err
		}
		result.Err = remoteErr
		c.logger.Debug("plaid error response",
			zap.Int("status", status),
			zap.String("code", remoteErr.Code.String()),
		)
	}

	return result, nil
}

// parseErrorResponse decodes the service's error body. A non-2xx response
// whose body is not the error shape is a protocol violation and fatal.
func parseErrorResponse(status int, raw []byte) (*Error, error) {
	var resp errorResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("plaid: decode error response (http %d): %w", status, err)
	}
	return resp.toError(status), nil
}

func validateAPI(api APIType) error {
	if api != APIConnect && api != APIAuth {
		return fmt.Errorf("%w: unknown api type %q", ErrInvalidArgument, api)
	}
	return nil
}
