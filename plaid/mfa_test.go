package plaid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMFADevicePrompt(t *testing.T) {
	resp := mfaResponse{
		AccessToken: "test",
		Type:        "device",
		MFA:         json.RawMessage(`{"message":"Code sent to xxx-xxx-5309"}`),
	}

	prompt, err := resp.toAuthenticationPrompt()
	require.NoError(t, err)
	assert.Equal(t, AuthTypeDevice, prompt.Type)
	assert.Equal(t, "Code sent to xxx-xxx-5309", prompt.DeviceMessage)
}

func TestMFACodeListPrompt(t *testing.T) {
	resp := mfaResponse{
		AccessToken: "test",
		Type:        "list",
		MFA:         json.RawMessage(`[{"mask":"t..t@plaid.com","type":"email"},{"mask":"xxx-xxx-5309","type":"phone"}]`),
	}

	prompt, err := resp.toAuthenticationPrompt()
	require.NoError(t, err)
	assert.Equal(t, AuthTypeCode, prompt.Type)
	require.Len(t, prompt.CodeDeliveryOptions, 2)
	assert.Equal(t, "t..t@plaid.com", prompt.CodeDeliveryOptions[0].Mask)
	assert.Equal(t, DeliveryTypeEmail, prompt.CodeDeliveryOptions[0].Type)
	assert.Equal(t, DeliveryTypePhone, prompt.CodeDeliveryOptions[1].Type)
}

func TestMFAQuestionsPrompt(t *testing.T) {
	resp := mfaResponse{
		AccessToken: "test",
		Type:        "questions",
		MFA:         json.RawMessage(`[{"question":"What was the name of your first pet?"}]`),
	}

	prompt, err := resp.toAuthenticationPrompt()
	require.NoError(t, err)
	assert.Equal(t, AuthTypeQuestions, prompt.Type)
	require.Len(t, prompt.Questions, 1)
	assert.Equal(t, "What was the name of your first pet?", prompt.Questions[0])
}

func TestMFASelectionsPrompt(t *testing.T) {
	resp := mfaResponse{
		AccessToken: "test",
		Type:        "selections",
		MFA:         json.RawMessage(`[{"question":"Which city have you lived in?","answers":["Austin","Boston","Chicago"]}]`),
	}

	prompt, err := resp.toAuthenticationPrompt()
	require.NoError(t, err)
	assert.Equal(t, AuthTypeSelections, prompt.Type)
	require.Len(t, prompt.Selections, 1)
	assert.Equal(t, "Which city have you lived in?", prompt.Selections[0].Question)
	assert.Equal(t, []string{"Austin", "Boston", "Chicago"}, prompt.Selections[0].Answers)
}

func TestMFAUnrecognizedTypeFails(t *testing.T) {
	resp := mfaResponse{
		AccessToken: "test",
		Type:        "image",
		MFA:         json.RawMessage(`{"url":"https://example.com/captcha.png"}`),
	}

	prompt, err := resp.toAuthenticationPrompt()
	assert.Nil(t, prompt)
	assert.ErrorIs(t, err, ErrUnsupportedMFAType)
	assert.Contains(t, err.Error(), "image")
}

func TestMFAMalformedPayloadFails(t *testing.T) {
	resp := mfaResponse{
		AccessToken: "test",
		Type:        "questions",
		MFA:         json.RawMessage(`{"question":"not a list"}`),
	}

	prompt, err := resp.toAuthenticationPrompt()
	assert.Nil(t, prompt)
	assert.Error(t, err)
}
