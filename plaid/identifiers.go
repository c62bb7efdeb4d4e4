package plaid

// AccessToken identifies an authenticated (or partially authenticated,
// pending MFA) user session with the Plaid service. It is opaque: the only
// thing a caller should ever do with one is hand it back on a later call.
type AccessToken string

func (t AccessToken) String() string { return string(t) }

// InstitutionType identifies a financial institution by Plaid's short code.
// The set is open: institutions added by the service after this package was
// written are valid values, not errors.
type InstitutionType string

const (
	InstitutionAmericanExpress InstitutionType = "amex"
	InstitutionBankOfAmerica   InstitutionType = "bofa"
	InstitutionCapitalOne      InstitutionType = "capone360"
	InstitutionCharlesSchwab   InstitutionType = "schwab"
	InstitutionChase           InstitutionType = "chase"
	InstitutionCiti            InstitutionType = "citi"
	InstitutionFidelity        InstitutionType = "fidelity"
	InstitutionNavyFederal     InstitutionType = "nfcu"
	InstitutionPNC             InstitutionType = "pnc"
	InstitutionSVB             InstitutionType = "svb"
	InstitutionSunTrust        InstitutionType = "suntrust"
	InstitutionTDBank          InstitutionType = "td"
	InstitutionUSAA            InstitutionType = "usaa"
	InstitutionUSBank          InstitutionType = "us"
	InstitutionWellsFargo      InstitutionType = "wells"
)

// AccountType is the broad account classification reported by the service.
type AccountType string

const (
	AccountTypeBrokerage  AccountType = "brokerage"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeDepository AccountType = "depository"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeMortgage   AccountType = "mortgage"
	AccountTypeOther      AccountType = "other"
)

// AccountSubType narrows an AccountType. Not every account has one.
type AccountSubType string

const (
	AccountSubTypeAuto                 AccountSubType = "auto"
	AccountSubTypeBrokerage            AccountSubType = "brokerage"
	AccountSubTypeCashManagement       AccountSubType = "cash management"
	AccountSubTypeCD                   AccountSubType = "cd"
	AccountSubTypeCertificateOfDeposit AccountSubType = "certificate of deposit"
	AccountSubTypeChecking             AccountSubType = "checking"
	AccountSubTypeCredit               AccountSubType = "credit"
	AccountSubTypeCreditCard           AccountSubType = "credit card"
	AccountSubTypeHome                 AccountSubType = "home"
	AccountSubTypeInstallment          AccountSubType = "installment"
	AccountSubTypeIRA                  AccountSubType = "ira"
	AccountSubTypeLineOfCredit         AccountSubType = "line of credit"
	AccountSubTypeMortgage             AccountSubType = "mortgage"
	AccountSubTypeMutualFund           AccountSubType = "mutual_fund"
	AccountSubTypePrepaid              AccountSubType = "prepaid"
	AccountSubTypeSavings              AccountSubType = "savings"
)

// AuthType discriminates the multi-factor auth challenge variants. The wire
// value for code delivery is "list", kept here verbatim.
type AuthType string

const (
	AuthTypeDevice     AuthType = "device"
	AuthTypeCode       AuthType = "list"
	AuthTypeQuestions  AuthType = "questions"
	AuthTypeSelections AuthType = "selections"
)

// DeliveryType is the channel an MFA code can be sent over.
type DeliveryType string

const (
	DeliveryTypeCard  DeliveryType = "card"
	DeliveryTypeEmail DeliveryType = "email"
	DeliveryTypePhone DeliveryType = "phone"
)

// APIType selects between the two user-facing product APIs. Connect is the
// default everywhere an APIType is optional.
type APIType string

const (
	APIConnect APIType = "connect"
	APIAuth    APIType = "auth"
)
