package plaid

import (
	"encoding/json"
	"fmt"
)

// mfaResponse is the 201 Created body of the user flows. The mfa payload's
// shape depends entirely on the sibling type discriminator, so it is held
// raw and resolved by a tagged dispatch below.
type mfaResponse struct {
	AccessToken string          `json:"access_token"`
	Type        string          `json:"type"`
	MFA         json.RawMessage `json:"mfa"`
}

type mfaCodeResponse struct {
	Mask string `json:"mask"`
	Type string `json:"type"`
}

type mfaQuestionResponse struct {
	Question string `json:"question"`
}

type mfaSelectionResponse struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

// toAuthenticationPrompt resolves the raw mfa payload into the concrete
// challenge variant named by the type discriminator. An unrecognized type is
// a hard failure: it means the remote contract grew a variant this client
// cannot represent.
func (r *mfaResponse) toAuthenticationPrompt() (*AuthenticationPrompt, error) {
	prompt := &AuthenticationPrompt{Type: AuthType(r.Type)}

	switch prompt.Type {
	case AuthTypeDevice:
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(r.MFA, &payload); err != nil {
			return nil, fmt.Errorf("plaid: decode device mfa payload: %w", err)
		}
		prompt.DeviceMessage = payload.Message

	case AuthTypeCode:
		var payload []mfaCodeResponse
		if err := json.Unmarshal(r.MFA, &payload); err != nil {
			return nil, fmt.Errorf("plaid: decode code mfa payload: %w", err)
		}
		prompt.CodeDeliveryOptions = make([]CodeDeliveryOption, len(payload))
		for i, c := range payload {
			prompt.CodeDeliveryOptions[i] = CodeDeliveryOption{
				Mask: c.Mask,
				Type: DeliveryType(c.Type),
			}
		}

	case AuthTypeQuestions:
		var payload []mfaQuestionResponse
		if err := json.Unmarshal(r.MFA, &payload); err != nil {
			return nil, fmt.Errorf("plaid: decode question mfa payload: %w", err)
		}
		prompt.Questions = make([]string, len(payload))
		for i, q := range payload {
			prompt.Questions[i] = q.Question
		}

	case AuthTypeSelections:
		var payload []mfaSelectionResponse
		if err := json.Unmarshal(r.MFA, &payload); err != nil {
			return nil, fmt.Errorf("plaid: decode selection mfa payload: %w", err)
		}
		prompt.Selections = make([]MultipleChoiceQuestion, len(payload))
		for i, s := range payload {
			prompt.Selections[i] = MultipleChoiceQuestion{
				Question: s.Question,
				Answers:  s.Answers,
			}
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMFAType, r.Type)
	}

	return prompt, nil
}
