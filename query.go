package trafficviz

import (
	"net/http"
	"strconv"
	"strings"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

type frameQuery struct {
	hover  string
	width  float64
	height float64
}

// parseFrameQuery validates the frame endpoints' parameters: an optional
// hover node id and an optional width/height pair (both or neither).
func parseFrameQuery(r *http.Request) (frameQuery, error) {
	q := frameQuery{hover: strings.TrimSpace(r.URL.Query().Get("hover"))}

	ws := r.URL.Query().Get("width")
	hs := r.URL.Query().Get("height")
	if (ws == "") != (hs == "") {
		return frameQuery{}, &QueryError{Msg: "width and height must be given together"}
	}
	if ws == "" {
		return q, nil
	}
	w, err := parsePositiveFloat(ws)
	if err != nil {
		return frameQuery{}, err
	}
	h, err := parsePositiveFloat(hs)
	if err != nil {
		return frameQuery{}, err
	}
	q.width, q.height = w, h
	return q, nil
}

func parsePositiveFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, &QueryError{Msg: "Numeric parameter must be a positive number."}
	}
	return v, nil
}
