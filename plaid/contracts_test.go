package plaid

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUserOptionsDefaultToLoginOnly(t *testing.T) {
	wire := newAddUserOptionsRequest(nil)

	out, err := json.Marshal(wire)
	require.NoError(t, err)
	assert.JSONEq(t, `{"login_only":true}`, string(out))
}

func TestAddUserOptionsSerialization(t *testing.T) {
	start := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2015, time.June, 30, 14, 5, 0, 0, time.UTC)
	loginOnly := false

	wire := newAddUserOptionsRequest(&AddUserOptions{
		LoginOnly:      &loginOnly,
		IncludeMFAList: true,
		IncludePending: true,
		StartDate:      &start,
		EndDate:        &end,
		WebhookURL:     "https://example.com/hook",
	})

	out, err := json.Marshal(wire)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"login_only": false,
		"pending": true,
		"list": true,
		"webhook": "https://example.com/hook",
		"start_date": "2015-01-01",
		"end_date": "2015-06-30"
	}`, string(out))
}

func TestAbsentOptionalFieldsAreOmitted(t *testing.T) {
	req := addUserRequest{
		plaidRequest: plaidRequest{ClientID: "id", Secret: "shh"},
		Username:     "plaid_test",
		Password:     "plaid_good",
		Type:         "wells",
	}

	out, err := json.Marshal(req)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.NotContains(t, fields, "pin")
	assert.NotContains(t, fields, "options")
	assert.NotContains(t, fields, "access_token")
}

func TestWireDateUnmarshal(t *testing.T) {
	var d wireDate
	require.NoError(t, json.Unmarshal([]byte(`"2014-07-21"`), &d))
	assert.Equal(t, time.Date(2014, time.July, 21, 0, 0, 0, 0, time.UTC), time.Time(d))

	require.NoError(t, json.Unmarshal([]byte(`"2014-07-21T00:00:00Z"`), &d))
	assert.Equal(t, time.Date(2014, time.July, 21, 0, 0, 0, 0, time.UTC), time.Time(d))

	assert.Error(t, json.Unmarshal([]byte(`"July 21st"`), &d))
}

func TestAccountResponseConversion(t *testing.T) {
	raw := `{
		"_id": "KdDjmojBERUKx3JkDd9RuxA5EvejA4SENO4AA",
		"_item": "KdDjmojBERUKx3JkDd9Ru",
		"_user": "eJXpMzpR65FP4RYno6rzuA",
		"balance": {"available": 1203.42, "current": 1274.93},
		"institution_type": "wells",
		"type": "depository",
		"subtype": "checking",
		"meta": {"name": "Plaid Savings", "number": "9606"}
	}`

	var resp accountResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	account := resp.toAccount()
	assert.Equal(t, "KdDjmojBERUKx3JkDd9RuxA5EvejA4SENO4AA", account.ID)
	assert.Equal(t, "KdDjmojBERUKx3JkDd9Ru", account.ItemID)
	assert.Equal(t, 1203.42, account.AvailableBalance)
	assert.Equal(t, 1274.93, account.CurrentBalance)
	assert.Equal(t, InstitutionWellsFargo, account.InstitutionType)
	assert.Equal(t, AccountTypeDepository, account.Type)
	assert.Equal(t, AccountSubTypeChecking, account.Subtype)
	assert.Equal(t, "Plaid Savings", account.Metadata["name"])
}

func TestAccountResponseNullSubtype(t *testing.T) {
	raw := `{"_id": "a", "balance": {"available": 0, "current": 0}, "type": "credit", "subtype": null}`

	var resp accountResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	assert.Equal(t, AccountSubType(""), resp.toAccount().Subtype)
}

func TestTransactionResponseConversion(t *testing.T) {
	raw := `{
		"_id": "0AZ0De04KqsreDgVwM1RSeYe66o9re3Kid41B",
		"_account": "XARE85EJqKsjxLp6XR8ocg8VakrkXpTXmRdOo",
		"amount": 200,
		"date": "2014-07-21",
		"name": "ATM Withdrawal",
		"pending": false,
		"category_id": "21012002",
		"category": ["Transfer", "Withdrawal", "ATM"],
		"meta": {
			"location": {
				"city": "San Francisco",
				"state": "CA",
				"address": "0 Market St",
				"coordinates": {"lat": 37.7941, "lon": -122.4072}
			}
		},
		"type": {"primary": "special"},
		"score": {"location": {"city": 1}}
	}`

	var resp transactionResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	trans := resp.toTransaction()
	assert.Equal(t, "0AZ0De04KqsreDgVwM1RSeYe66o9re3Kid41B", trans.ID)
	assert.Equal(t, "XARE85EJqKsjxLp6XR8ocg8VakrkXpTXmRdOo", trans.AccountID)
	assert.Equal(t, 200.0, trans.Amount)
	assert.Equal(t, time.Date(2014, time.July, 21, 0, 0, 0, 0, time.UTC), trans.Date)
	assert.Equal(t, "21012002", trans.CategoryID)
	assert.Equal(t, []string{"Transfer", "Withdrawal", "ATM"}, trans.Categories)

	require.NotNil(t, trans.Location)
	assert.Equal(t, "San Francisco", trans.Location.City)
	assert.Equal(t, "CA", trans.Location.State)
	assert.Equal(t, "0 Market St", trans.Location.Street)
	require.NotNil(t, trans.Location.Latitude)
	assert.Equal(t, 37.7941, *trans.Location.Latitude)
	require.NotNil(t, trans.Location.Longitude)
	assert.Equal(t, -122.4072, *trans.Location.Longitude)

	// The loosely typed blobs survive untouched.
	assert.JSONEq(t, `{"primary":"special"}`, string(trans.Type))
	assert.JSONEq(t, `{"location":{"city":1}}`, string(trans.Score))
}

func TestTransactionWithoutLocation(t *testing.T) {
	raw := `{"_id": "t1", "_account": "a1", "amount": 4.50, "meta": {"memo": "coffee"}}`

	var resp transactionResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	trans := resp.toTransaction()
	assert.Nil(t, trans.Location)
	assert.True(t, trans.Date.IsZero())
}

func TestInstitutionResponseConversion(t *testing.T) {
	raw := `{
		"id": "5301a93ac140de84910000e0",
		"name": "Wells Fargo",
		"type": "wells",
		"has_mfa": false,
		"mfa": [],
		"credentials": {"username": "Username", "password": "Password"},
		"products": ["connect", "auth", "balance"]
	}`

	var resp institutionResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	inst := resp.toInstitution()
	assert.Equal(t, "Wells Fargo", inst.Name)
	assert.Equal(t, InstitutionWellsFargo, inst.Type)
	assert.False(t, inst.HasMFA)
	assert.Equal(t, "Username", inst.UsernameHint)
	assert.Equal(t, "Password", inst.PasswordHint)
	assert.Contains(t, inst.Products, "auth")
}
