package plaid

import (
	"errors"
	"fmt"
)

// Fatal failure sentinels. These abort a call outright; they are never
// carried inside a result envelope.
var (
	// ErrInvalidArgument is returned before any network call when a caller
	// passes an empty or inconsistent argument.
	ErrInvalidArgument = errors.New("plaid: invalid argument")

	// ErrUnsupportedMFAType is returned when the service sends an MFA
	// challenge this client does not know how to parse. It indicates a
	// remote contract change, not a recoverable business error.
	ErrUnsupportedMFAType = errors.New("plaid: unsupported mfa type")
)

// ErrorCode is a named Plaid service error code. The numeric value is the
// code exactly as it appears in the service's error body.
// See: https://github.com/plaid/Support/blob/master/errors.md
type ErrorCode int

const (
	ErrorCodeUnknown ErrorCode = 0

	ErrorCodeAccessTokenMissing     ErrorCode = 1000
	ErrorCodeInstitutionTypeMissing ErrorCode = 1001
	ErrorCodeAccessTokenDisallowed  ErrorCode = 1003
	ErrorCodeInvalidOptionsFormat   ErrorCode = 1004
	ErrorCodeCredentialsMissing     ErrorCode = 1005
	ErrorCodeInvalidCredentialsFmt  ErrorCode = 1006
	ErrorCodeUpgradeToRequired      ErrorCode = 1007
	ErrorCodeUnsupportedAccessToken ErrorCode = 1008
	ErrorCodeInvalidContentType     ErrorCode = 1009

	ErrorCodeClientIDMissing         ErrorCode = 1100
	ErrorCodeSecretMissing           ErrorCode = 1101
	ErrorCodeSecretOrClientIDInvalid ErrorCode = 1102
	ErrorCodeUnauthorizedProduct     ErrorCode = 1104
	ErrorCodeBadAccessToken          ErrorCode = 1105
	ErrorCodeBadPublicToken          ErrorCode = 1106
	ErrorCodeMissingPublicToken      ErrorCode = 1107
	ErrorCodeInvalidInstitutionType  ErrorCode = 1108
	ErrorCodeProductNotEnabled       ErrorCode = 1110
	ErrorCodeInvalidUpgrade          ErrorCode = 1111
	ErrorCodeAdditionLimitExceeded   ErrorCode = 1112
	ErrorCodeRateLimitExceeded       ErrorCode = 1113

	ErrorCodeInvalidCredentials       ErrorCode = 1200
	ErrorCodeInvalidUsername          ErrorCode = 1201
	ErrorCodeInvalidPassword          ErrorCode = 1202
	ErrorCodeInvalidMFA               ErrorCode = 1203
	ErrorCodeInvalidSendMethod        ErrorCode = 1204
	ErrorCodeAccountLocked            ErrorCode = 1205
	ErrorCodeAccountNotSetup          ErrorCode = 1206
	ErrorCodeCountryNotSupported      ErrorCode = 1207
	ErrorCodeMFANotSupported          ErrorCode = 1208
	ErrorCodeInvalidPin               ErrorCode = 1209
	ErrorCodeAccountNotSupported      ErrorCode = 1210
	ErrorCodeBankOfAmericaRestricted  ErrorCode = 1211
	ErrorCodeNoAccounts               ErrorCode = 1212
	ErrorCodeMFAReset                 ErrorCode = 1215
	ErrorCodeMFANotRequired           ErrorCode = 1218

	ErrorCodeInstitutionNotAvailable  ErrorCode = 1300
	ErrorCodeInstitutionNotFound      ErrorCode = 1301
	ErrorCodeInstitutionNotResponding ErrorCode = 1302
	ErrorCodeInstitutionDown          ErrorCode = 1303

	ErrorCodeCategoryNotFound ErrorCode = 1501
	ErrorCodeTypeRequired     ErrorCode = 1502
	ErrorCodeInvalidType      ErrorCode = 1503
	ErrorCodeInvalidDate      ErrorCode = 1507

	ErrorCodeProductNotFound     ErrorCode = 1600
	ErrorCodeProductNotAvailable ErrorCode = 1601
	ErrorCodeUserNotFound        ErrorCode = 1605
	ErrorCodeAccountNotFound     ErrorCode = 1606
	ErrorCodeItemNotFound        ErrorCode = 1610

	ErrorCodeExtractorError      ErrorCode = 1700
	ErrorCodeExtractorErrorRetry ErrorCode = 1701
	ErrorCodePlaidError          ErrorCode = 1702

	ErrorCodePlannedMaintenance ErrorCode = 1800
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCodeUnknown:                  "unknown",
	ErrorCodeAccessTokenMissing:       "access_token_missing",
	ErrorCodeInstitutionTypeMissing:   "institution_type_missing",
	ErrorCodeAccessTokenDisallowed:    "access_token_disallowed",
	ErrorCodeInvalidOptionsFormat:     "invalid_options_format",
	ErrorCodeCredentialsMissing:       "credentials_missing",
	ErrorCodeInvalidCredentialsFmt:    "invalid_credentials_format",
	ErrorCodeUpgradeToRequired:        "upgrade_to_required",
	ErrorCodeUnsupportedAccessToken:   "unsupported_access_token",
	ErrorCodeInvalidContentType:       "invalid_content_type",
	ErrorCodeClientIDMissing:          "client_id_missing",
	ErrorCodeSecretMissing:            "secret_missing",
	ErrorCodeSecretOrClientIDInvalid:  "secret_or_client_id_invalid",
	ErrorCodeUnauthorizedProduct:      "unauthorized_product",
	ErrorCodeBadAccessToken:           "bad_access_token",
	ErrorCodeBadPublicToken:           "bad_public_token",
	ErrorCodeMissingPublicToken:       "missing_public_token",
	ErrorCodeInvalidInstitutionType:   "invalid_institution_type",
	ErrorCodeProductNotEnabled:        "product_not_enabled",
	ErrorCodeInvalidUpgrade:           "invalid_upgrade",
	ErrorCodeAdditionLimitExceeded:    "addition_limit_exceeded",
	ErrorCodeRateLimitExceeded:        "rate_limit_exceeded",
	ErrorCodeInvalidCredentials:       "invalid_credentials",
	ErrorCodeInvalidUsername:          "invalid_username",
	ErrorCodeInvalidPassword:          "invalid_password",
	ErrorCodeInvalidMFA:               "invalid_mfa",
	ErrorCodeInvalidSendMethod:        "invalid_send_method",
	ErrorCodeAccountLocked:            "account_locked",
	ErrorCodeAccountNotSetup:          "account_not_setup",
	ErrorCodeCountryNotSupported:      "country_not_supported",
	ErrorCodeMFANotSupported:          "mfa_not_supported",
	ErrorCodeInvalidPin:               "invalid_pin",
	ErrorCodeAccountNotSupported:      "account_not_supported",
	ErrorCodeBankOfAmericaRestricted:  "bofa_restricted",
	ErrorCodeNoAccounts:               "no_accounts",
	ErrorCodeMFAReset:                 "mfa_reset",
	ErrorCodeMFANotRequired:           "mfa_not_required",
	ErrorCodeInstitutionNotAvailable:  "institution_not_available",
	ErrorCodeInstitutionNotFound:      "institution_not_found",
	ErrorCodeInstitutionNotResponding: "institution_not_responding",
	ErrorCodeInstitutionDown:          "institution_down",
	ErrorCodeCategoryNotFound:         "category_not_found",
	ErrorCodeTypeRequired:             "type_required",
	ErrorCodeInvalidType:              "invalid_type",
	ErrorCodeInvalidDate:              "invalid_date",
	ErrorCodeProductNotFound:          "product_not_found",
	ErrorCodeProductNotAvailable:      "product_not_available",
	ErrorCodeUserNotFound:             "user_not_found",
	ErrorCodeAccountNotFound:          "account_not_found",
	ErrorCodeItemNotFound:             "item_not_found",
	ErrorCodeExtractorError:           "extractor_error",
	ErrorCodeExtractorErrorRetry:      "extractor_error_retry",
	ErrorCodePlaidError:               "plaid_error",
	ErrorCodePlannedMaintenance:       "planned_maintenance",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(c))
}

// errorCodeFromInt maps a numeric service code to its named ErrorCode.
// Codes absent from the table map to ErrorCodeUnknown; this never fails.
func errorCodeFromInt(code int) ErrorCode {
	if _, ok := errorCodeNames[ErrorCode(code)]; ok {
		return ErrorCode(code)
	}
	return ErrorCodeUnknown
}

// Error is a structured business error returned by the Plaid service. It is
// only ever built from a remote error body; callers receive it inside a
// result envelope, not as a returned Go error.
type Error struct {
	// Message is the service's description of what went wrong.
	Message string

	// Resolution is the service's hint on how to fix it.
	Resolution string

	// Code is the named error kind.
	Code ErrorCode

	// StatusCode is the HTTP status the error arrived with.
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("plaid: %s (%s, http %d)", e.Message, e.Code, e.StatusCode)
}
