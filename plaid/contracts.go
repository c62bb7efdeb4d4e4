package plaid

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/guregu/null"
)

// Wire contracts. JSON field names here are fixed contract surface: they
// must match the remote schema exactly and are never renamed. Optional
// request fields are omitted entirely when unset, never serialized as null.

const dateLayout = "2006-01-02"

// wireDate carries the service's date-only timestamps. Responses sometimes
// include a full RFC 3339 timestamp, so unmarshaling accepts both.
type wireDate time.Time

func newWireDate(t *time.Time) *wireDate {
	if t == nil {
		return nil
	}
	d := wireDate(t.UTC())
	return &d
}

func (d wireDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).UTC().Format(dateLayout))
}

func (d *wireDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", s, err)
		}
	}
	*d = wireDate(t.UTC())
	return nil
}

// plaidRequest is the base of every authenticated request body.
type plaidRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token,omitempty"`
}

type addUserRequest struct {
	plaidRequest
	Username string                 `json:"username"`
	Password string                 `json:"password"`
	Pin      string                 `json:"pin,omitempty"`
	Type     string                 `json:"type"`
	Options  *addUserOptionsRequest `json:"options,omitempty"`
}

type addUserOptionsRequest struct {
	LoginOnly *bool     `json:"login_only,omitempty"`
	Pending   *bool     `json:"pending,omitempty"`
	List      *bool     `json:"list,omitempty"`
	Webhook   string    `json:"webhook,omitempty"`
	StartDate *wireDate `json:"start_date,omitempty"`
	EndDate   *wireDate `json:"end_date,omitempty"`
}

// newAddUserOptionsRequest builds the wire options. login_only defaults to
// true: data pulls are deferred to an explicit fetch unless the caller opts
// out, which is the behavior this client has always shipped.
func newAddUserOptionsRequest(opts *AddUserOptions) *addUserOptionsRequest {
	loginOnly := true
	wire := &addUserOptionsRequest{LoginOnly: &loginOnly}
	if opts == nil {
		return wire
	}
	if opts.LoginOnly != nil {
		wire.LoginOnly = opts.LoginOnly
	}
	if opts.IncludePending {
		pending := true
		wire.Pending = &pending
	}
	if opts.IncludeMFAList {
		list := true
		wire.List = &list
	}
	wire.Webhook = opts.WebhookURL
	wire.StartDate = newWireDate(opts.StartDate)
	wire.EndDate = newWireDate(opts.EndDate)
	return wire
}

type stepRequest struct {
	plaidRequest

	// MFA is a single answer string or a list of answer strings.
	MFA any `json:"mfa,omitempty"`

	Options *stepOptionsRequest `json:"options,omitempty"`
}

type stepOptionsRequest struct {
	// SendMethod selects the code delivery, either {"type": <delivery>}
	// or {"mask": <device mask>}.
	SendMethod map[string]string `json:"send_method"`
}

type updateUserRequest struct {
	plaidRequest
	Username string                `json:"username,omitempty"`
	Password string                `json:"password,omitempty"`
	Pin      string                `json:"pin,omitempty"`
	Options  *updateOptionsRequest `json:"options,omitempty"`
}

type updateOptionsRequest struct {
	Webhook string `json:"webhook"`
}

type transactionsRequest struct {
	plaidRequest
	Options *transactionOptionsRequest `json:"options,omitempty"`
}

type transactionOptionsRequest struct {
	Account   string    `json:"account,omitempty"`
	Pending   *bool     `json:"pending,omitempty"`
	GTE       *wireDate `json:"gte,omitempty"`
	LTE       *wireDate `json:"lte,omitempty"`
}

type exchangeTokenRequest struct {
	plaidRequest
	PublicToken string `json:"public_token"`
	AccountID   string `json:"account_id"`
}

// addUserResponse is the success body shared by the user flows, balance,
// auth data and transaction endpoints.
type addUserResponse struct {
	AccessToken  string                `json:"access_token"`
	Accounts     []accountResponse     `json:"accounts"`
	Transactions []transactionResponse `json:"transactions"`
}

type balanceResponse struct {
	Available float64 `json:"available"`
	Current   float64 `json:"current"`
}

type accountResponse struct {
	ID              string            `json:"_id"`
	Item            string            `json:"_item"`
	User            string            `json:"_user"`
	Balance         balanceResponse   `json:"balance"`
	InstitutionType string            `json:"institution_type"`
	Type            string            `json:"type"`
	Subtype         null.String       `json:"subtype"`
	Meta            map[string]string `json:"meta"`
}

func (r *accountResponse) toAccount() Account {
	return Account{
		ID:               r.ID,
		ItemID:           r.Item,
		UserID:           r.User,
		AvailableBalance: r.Balance.Available,
		CurrentBalance:   r.Balance.Current,
		InstitutionType:  InstitutionType(r.InstitutionType),
		Type:             AccountType(r.Type),
		Subtype:          AccountSubType(nullString(r.Subtype)),
		Metadata:         r.Meta,
	}
}

type transactionResponse struct {
	ID         string          `json:"_id"`
	Account    string          `json:"_account"`
	Amount     float64         `json:"amount"`
	Date       *wireDate       `json:"date"`
	Name       string          `json:"name"`
	Pending    bool            `json:"pending"`
	CategoryID null.String     `json:"category_id"`
	Category   []string        `json:"category"`
	Meta       json.RawMessage `json:"meta"`
	Type       json.RawMessage `json:"type"`
	Score      json.RawMessage `json:"score"`
}

// transactionMeta is the one corner of the opaque meta blob this client
// does interpret: the optional location.
type transactionMeta struct {
	Location struct {
		City        string `json:"city"`
		State       string `json:"state"`
		Address     string `json:"address"`
		Coordinates *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coordinates"`
	} `json:"location"`
}

func (r *transactionResponse) toTransaction() Transaction {
	trans := Transaction{
		ID:         r.ID,
		AccountID:  r.Account,
		Amount:     r.Amount,
		Name:       r.Name,
		IsPending:  r.Pending,
		CategoryID: nullString(r.CategoryID),
		Categories: r.Category,
		Metadata:   r.Meta,
		Type:       r.Type,
		Score:      r.Score,
	}
	if r.Date != nil {
		trans.Date = time.Time(*r.Date)
	}
	trans.Location = parseLocation(r.Meta)
	return trans
}

// parseLocation extracts meta.location when present. A meta blob without a
// usable location is not an error: the blob is otherwise opaque.
func parseLocation(meta json.RawMessage) *Address {
	if len(meta) == 0 {
		return nil
	}
	var parsed transactionMeta
	if err := json.Unmarshal(meta, &parsed); err != nil {
		return nil
	}
	loc := parsed.Location
	if loc.City == "" && loc.State == "" && loc.Address == "" && loc.Coordinates == nil {
		return nil
	}
	addr := &Address{City: loc.City, State: loc.State, Street: loc.Address}
	if loc.Coordinates != nil {
		lat, lon := loc.Coordinates.Lat, loc.Coordinates.Lon
		addr.Latitude = &lat
		addr.Longitude = &lon
	}
	return addr
}

type categoryResponse struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Hierarchy []string `json:"hierarchy"`
}

func (r *categoryResponse) toCategory() Category {
	return Category{ID: r.ID, Type: r.Type, Hierarchy: r.Hierarchy}
}

type credentialsResponse struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type institutionResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Type        string               `json:"type"`
	HasMFA      bool                 `json:"has_mfa"`
	MFA         []string             `json:"mfa"`
	Credentials *credentialsResponse `json:"credentials"`
	Products    []string             `json:"products"`
}

func (r *institutionResponse) toInstitution() Institution {
	inst := Institution{
		ID:              r.ID,
		Name:            r.Name,
		Type:            InstitutionType(r.Type),
		HasMFA:          r.HasMFA,
		MFADescriptions: r.MFA,
		Products:        r.Products,
	}
	if r.Credentials != nil {
		inst.UsernameHint = r.Credentials.Username
		inst.PasswordHint = r.Credentials.Password
	}
	return inst
}

type exchangeTokenResponse struct {
	AccessToken string `json:"access_token"`
	BankToken   string `json:"stripe_bank_account_token"`
}

// errorResponse is the service's error body, attached to any non-2xx status.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Resolve string `json:"resolve"`
}

func (r *errorResponse) toError(httpStatus int) *Error {
	return &Error{
		Message:    r.Message,
		Resolution: r.Resolve,
		Code:       errorCodeFromInt(r.Code),
		StatusCode: httpStatus,
	}
}

func toAccounts(in []accountResponse) []Account {
	out := make([]Account, len(in))
	for i := range in {
		out[i] = in[i].toAccount()
	}
	return out
}

func toTransactions(in []transactionResponse) []Transaction {
	out := make([]Transaction, len(in))
	for i := range in {
		out[i] = in[i].toTransaction()
	}
	return out
}

func nullString(ns null.String) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
