package endpoints

import (
	"net/http"

	"loadavg-service/internal/domain"
	"loadavg-service/internal/util"
)

// LoadAvgResponse is the wire shape of a LoadSample. Field order is the
// order of the keys in the encoded body.
type LoadAvgResponse struct {
	Last   float64 `json:"last"`
	Last5  float64 `json:"last5"`
	Last15 float64 `json:"last15"`
}

func ToLoadAvgResponse(s domain.LoadSample) LoadAvgResponse {
	return LoadAvgResponse{
		Last:   s.Last,
		Last5:  s.Last5,
		Last15: s.Last15,
	}
}

type LoadAvg struct {
	Response APIResponse
	logger   *util.ServiceLogger
	sampler  domain.Sampler
}

func (l *LoadAvg) Init(sampler domain.Sampler, webSlogger *util.ServiceLogger) {
	l.sampler = sampler
	l.logger = webSlogger
}

func (l *LoadAvg) GetLoadAvgHandler(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		l.logger.LogEvent(util.LOG_LEVEL_ERROR, "Method Not Allowed. Only GET requests are supported", r.Method)
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	sample, err := l.sampler.Sample(r.Context())
	if err != nil {
		l.logger.LogEvent(util.LOG_LEVEL_ERROR, "Occured while sampling load average. Err -", err)
		l.Response.WriteErrorResponseWithStatusCode(w, err, http.StatusInternalServerError)
		return
	}

	if err := l.Response.WriteResultResponse(w, ToLoadAvgResponse(sample)); err != nil {
		l.logger.LogEvent(util.LOG_LEVEL_WARN, "Occured while writing load average response. Err -", err)
	}
}
