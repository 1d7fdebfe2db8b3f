package util

import (
	libconstants "github.com/filswan/go-swan-lib/constants"
)

type BasicResponse struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	RequestId string      `json:"request_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
}

func CreateSuccessResponse(_data interface{}) BasicResponse {
	return BasicResponse{
		Status: libconstants.SWAN_API_STATUS_SUCCESS,
		Data:   _data,
		Code:   SuccessCode,
	}
}

func CreateErrorResponse(code int, errMsg ...string) BasicResponse {
	var msg string
	if len(errMsg) == 0 {
		msg = codeMsg[code]
	} else {
		msg = errMsg[0]
	}
	return BasicResponse{
		Status:  libconstants.SWAN_API_STATUS_FAIL,
		Code:    code,
		Message: msg,
	}
}

func (r BasicResponse) WithRequestId(requestId string) BasicResponse {
	r.RequestId = requestId
	return r
}

func (r BasicResponse) WithData(data interface{}) BasicResponse {
	r.Data = data
	return r
}

const (
	SuccessCode = 200
	JsonError   = 400

	InvalidRequestError         = 4001
	UnsupportedAcceleratorError = 4002
	SelectMachineError          = 5001
)

var codeMsg = map[int]string{
	JsonError: "An error occurred while converting to json",

	InvalidRequestError:         "The resource request is invalid",
	UnsupportedAcceleratorError: "The requested accelerator is not supported by the selected machine",
	SelectMachineError:          "An error occurred while selecting a machine",
}
