package endpoints

import (
	"encoding/json"
	"net/http"
)

type APIResponse struct {
	Status    bool   `json:"status"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code"`
}

func writeHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
}

func (res APIResponse) WriteErrorResponseWithStatusCode(w http.ResponseWriter, err error, StatusCode int) {
	res.Status = false
	res.Error = PublicError(err).Error()
	res.ErrorCode = GetErrorCode(err)

	errJson, _ := json.Marshal(res)

	writeHeaders(w)
	w.WriteHeader(StatusCode)
	w.Write(errJson)
}

// WriteResultResponse writes result as the whole body, without an envelope.
func (res APIResponse) WriteResultResponse(w http.ResponseWriter, result interface{}) error {
	body, err := json.Marshal(result)
	if err != nil {
		res.WriteErrorResponseWithStatusCode(w, err, http.StatusInternalServerError)
		return err
	}

	writeHeaders(w)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
	return err
}
