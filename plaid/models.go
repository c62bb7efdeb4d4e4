package plaid

import (
	"encoding/json"
	"time"
)

// Account is a single account at a financial institution.
type Account struct {
	ID               string
	ItemID           string
	UserID           string
	AvailableBalance float64
	CurrentBalance   float64
	InstitutionType  InstitutionType
	Type             AccountType
	Subtype          AccountSubType
	Metadata         map[string]string
}

// Address is the location attached to some transactions.
type Address struct {
	City      string
	State     string
	Street    string
	Latitude  *float64
	Longitude *float64
}

// Transaction is a single transaction on an account. Amounts are positive
// for money leaving the account and negative for money entering it.
//
// Metadata, Type and Score are preserved verbatim from the wire: the remote
// schema leaves them loosely typed, so this client passes them through
// uninterpreted rather than force-fitting a structure onto them.
type Transaction struct {
	ID         string
	AccountID  string
	Amount     float64
	Date       time.Time
	IsPending  bool
	CategoryID string
	Categories []string
	Location   *Address
	Name       string
	Metadata   json.RawMessage
	Type       json.RawMessage
	Score      json.RawMessage
}

// Category is a transaction category in Plaid's taxonomy.
type Category struct {
	ID        string
	Type      string
	Hierarchy []string
}

// Institution describes a financial institution the service supports.
type Institution struct {
	ID              string
	Name            string
	Type            InstitutionType
	HasMFA          bool
	MFADescriptions []string
	UsernameHint    string
	PasswordHint    string
	Products        []string
}

// CodeDeliveryOption is one channel the user may pick to receive an MFA code.
type CodeDeliveryOption struct {
	// Mask is the masked destination, e.g. "t..t@plaid.com" or "xxx-xxx-5309".
	Mask string
	Type DeliveryType
}

// MultipleChoiceQuestion is one selection-based MFA question with its
// allowed answers.
type MultipleChoiceQuestion struct {
	Question string
	Answers  []string
}

// AuthenticationPrompt describes an MFA challenge the user must complete.
// Exactly one of the variant payloads is populated, matching Type.
type AuthenticationPrompt struct {
	Type AuthType

	// DeviceMessage is set when Type is AuthTypeDevice.
	DeviceMessage string

	// CodeDeliveryOptions is set when Type is AuthTypeCode.
	CodeDeliveryOptions []CodeDeliveryOption

	// Questions is set when Type is AuthTypeQuestions.
	Questions []string

	// Selections is set when Type is AuthTypeSelections.
	Selections []MultipleChoiceQuestion
}

// AddUserOptions tunes an AddUser call. The zero value (or nil) asks for a
// login-only add against the connect API.
type AddUserOptions struct {
	// Pin is required by a few institutions (e.g. USAA).
	Pin string

	// API selects connect or auth. Empty means connect.
	API APIType

	// LoginOnly suppresses account/transaction data in the initial
	// response. Nil means true, mirroring the service default this client
	// has always sent.
	LoginOnly *bool

	// IncludeMFAList asks the service to return the full list of code
	// delivery options instead of picking one.
	IncludeMFAList bool

	// IncludePending includes pending transactions in the initial pull.
	IncludePending bool

	StartDate *time.Time
	EndDate   *time.Time

	// WebhookURL is called by the service when transaction data is ready.
	WebhookURL string
}

// StepOptions tunes an MFA step call.
type StepOptions struct {
	// API selects connect or auth. Empty means connect.
	API APIType

	// IsUpdate marks the step as part of an update-user flow, which uses
	// PATCH instead of POST.
	IsUpdate bool
}

// UpdateUserOptions tunes an UpdateUser call.
type UpdateUserOptions struct {
	Pin string

	// WebhookURL, when set alone, performs a webhook-only update: username
	// and password may then be empty.
	WebhookURL string

	// API selects connect or auth. Empty means connect.
	API APIType
}

// TransactionOptions filters a GetTransactions call. Nil means no filter.
type TransactionOptions struct {
	// AccountID restricts results to a single account.
	AccountID string

	// Pending includes or excludes pending transactions.
	Pending *bool

	// StartDate and EndDate bound the transaction dates, inclusive.
	StartDate *time.Time
	EndDate   *time.Time
}

// Result is the generic value/error envelope returned by the single-value
// endpoints. Exactly one of Value or Err is meaningful.
type Result[T any] struct {
	Value T
	Err   *Error
}

// IsError reports whether the call produced a remote business error. When
// true, Value must not be trusted.
func (r *Result[T]) IsError() bool { return r.Err != nil }

// AddUserResult is the outcome of the add/authenticate/update-user flows.
type AddUserResult struct {
	// AccessToken is present on any non-error outcome. While MFA is
	// pending it identifies the half-open session and is unusable for
	// data calls.
	AccessToken AccessToken

	// Accounts and Transactions are populated only when the call fully
	// succeeded and was not login-only.
	Accounts     []Account
	Transactions []Transaction

	// AuthPrompt is non-nil iff the service demands an MFA step.
	AuthPrompt *AuthenticationPrompt

	Err *Error
}

func (r *AddUserResult) IsError() bool { return r.Err != nil }

// IsMFARequired reports whether the caller must complete an MFA step via
// AuthenticateUser before the access token becomes usable.
func (r *AddUserResult) IsMFARequired() bool { return r.AuthPrompt != nil }

// TransactionResult is the outcome of GetTransactions.
type TransactionResult struct {
	Accounts     []Account
	Transactions []Transaction
	Err          *Error
}

func (r *TransactionResult) IsError() bool { return r.Err != nil }

// TokenExchangeResult is the outcome of ExchangeToken.
type TokenExchangeResult struct {
	AccessToken AccessToken

	// BankAccountToken is the Stripe bank account token minted alongside
	// the access token. Carried as an opaque string.
	BankAccountToken string

	Err *Error
}

func (r *TokenExchangeResult) IsError() bool { return r.Err != nil }
