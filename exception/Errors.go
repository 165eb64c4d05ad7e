package exception

import (
	"fmt"
	"strings"
)

type CustomError struct {
	Status  int                    `json:"status"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Debug   string                 `json:"debug,omitempty"`
}

func (c CustomError) Error() string {
	msg := c.Message
	for k, v := range c.Params {
		msg = strings.ReplaceAll(msg, "$"+k, fmt.Sprintf("%v", v))
	}
	if c.Debug != "" {
		return msg + " | " + c.Debug
	} else {
		return msg
	}
}

const (
	IncorrectParamType    = "10"
	IncorrectParamTypeMsg = "$param parameter should be $type"

	InvalidParameterValue    = "11"
	InvalidParameterValueMsg = "Value '$value' is not allowed for parameter $param"

	BadRequestBody    = "13"
	BadRequestBodyMsg = "Failed to decode body"

	RequiredParamsMissing    = "14"
	RequiredParamsMissingMsg = "Required parameters are missing: $params"

	UserNotFound    = "100"
	UserNotFoundMsg = "User with id = $userId not found"

	UserNotArchived    = "101"
	UserNotArchivedMsg = "User with id = $userId not found, not archived, or already anonymized"

	EmailAlreadyTaken    = "102"
	EmailAlreadyTakenMsg = "Email $email is already in use"

	CylinderSetNotFound    = "110"
	CylinderSetNotFoundMsg = "Diving cylinder set with id = $setId not found"

	FillEventNotFound    = "120"
	FillEventNotFoundMsg = "Fill event with id = $fillEventId not found"
)
