package mockapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"nexus/internal/domain"
)

// fieldError mirrors one entry of a 422 detail list.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// params reads query parameters and collects validation failures so that a
// handler can report all of them at once.
type params struct {
	c    *gin.Context
	errs []fieldError
}

func query(c *gin.Context) *params { return &params{c: c} }

func (p *params) fail(loc, name, msg, typ string) {
	p.errs = append(p.errs, fieldError{Loc: []string{loc, name}, Msg: msg, Type: typ})
}

func (p *params) raw(name string, required bool) (string, bool) {
	v, ok := p.c.GetQuery(name)
	if !ok && required {
		p.fail("query", name, "field required", "value_error.missing")
	}
	return v, ok
}

func (p *params) str(name string, required bool, def string) string {
	v, ok := p.raw(name, required)
	if !ok {
		return def
	}
	return v
}

func (p *params) decimal(name string, required bool, def decimal.Decimal) decimal.Decimal {
	v, ok := p.raw(name, required)
	if !ok {
		return def
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		p.fail("query", name, "value is not a valid float", "type_error.float")
		return def
	}
	return d
}

func (p *params) float(name string, def float64) float64 {
	v, ok := p.raw(name, false)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		p.fail("query", name, "value is not a valid float", "type_error.float")
		return def
	}
	return f
}

func (p *params) integer(name string, required bool, def int64) int64 {
	v, ok := p.raw(name, required)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		p.fail("query", name, "value is not a valid integer", "type_error.integer")
		return def
	}
	return n
}

func (p *params) boolean(name string, def bool) bool {
	v, ok := p.raw(name, false)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		p.fail("query", name, "value could not be parsed to a boolean", "type_error.bool")
		return def
	}
	return b
}

// date parses an ISO date or datetime. Absent values return nil.
func (p *params) date(name string, required bool) *time.Time {
	v, ok := p.raw(name, required)
	if !ok || v == "" {
		return nil
	}
	ts, err := domain.ParseTimestamp(v)
	if err != nil {
		p.fail("query", name, "invalid datetime format", "value_error.datetime")
		return nil
	}
	return &ts.Time
}

// ok writes the collected failures as a 422 response and reports whether the
// handler may continue.
func (p *params) ok() bool {
	if len(p.errs) == 0 {
		return true
	}
	p.c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": p.errs})
	return false
}

// pathID parses the :id segment, answering 422 when it is not an integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": []fieldError{{
			Loc: []string{"path", "id"}, Msg: "value is not a valid integer", Type: "type_error.integer",
		}}})
		return 0, false
	}
	return id, true
}

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}
