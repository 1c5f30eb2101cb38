// Package common holds the Bedrock agent wire types shared by the portal
// lambdas, so a compliance agent can invoke them as action-group functions.
package common

import (
	"encoding/json"
	"strings"
)

type BedrockParameter struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// BedrockEvent is the function-invocation payload a Bedrock agent sends.
// ActionGroup being set is how a lambda tells it apart from its scheduled
// event.
type BedrockEvent struct {
	ActionGroup string             `json:"actionGroup"`
	Function    string             `json:"function"`
	Parameters  []BedrockParameter `json:"parameters"`
}

// GetParameter finds a parameter value by name, case insensitively; agents
// are not consistent about casing.
func (e *BedrockEvent) GetParameter(name string) string {
	for _, p := range e.Parameters {
		if strings.EqualFold(p.Name, name) {
			return p.Value
		}
	}
	return ""
}

type bedrockFunctionResponse struct {
	ResponseBody interface{} `json:"responseBody"`
}

type bedrockResponseContainer struct {
	ActionGroup      string                  `json:"actionGroup"`
	Function         string                  `json:"function"`
	FunctionResponse bedrockFunctionResponse `json:"functionResponse"`
}

type BedrockOutput struct {
	MessageVersion string                   `json:"messageVersion"`
	Response       bedrockResponseContainer `json:"response"`
}

// NewBedrockResponse wraps a lambda result in the TEXT response body shape
// Bedrock expects back from a function call.
func NewBedrockResponse(actionGroup, function string, results interface{}) BedrockOutput {
	resBody, _ := json.Marshal(results)
	return BedrockOutput{
		MessageVersion: "1.0",
		Response: bedrockResponseContainer{
			ActionGroup: actionGroup,
			Function:    function,
			FunctionResponse: bedrockFunctionResponse{
				ResponseBody: map[string]interface{}{
					"TEXT": map[string]string{
						"body": string(resBody),
					},
				},
			},
		},
	}
}
