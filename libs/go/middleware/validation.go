package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/churnlens/churn-api/libs/go/types/api/responses"
	"github.com/gin-gonic/gin"
)

// Field types understood by ValidateInput.
const (
	TypeString  = "string"
	TypeInt     = "int"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

const ValidatedBodyKey = "validatedBody"

// ValidationRule defines the expected shape of one body field
type ValidationRule struct {
	Field    string
	Required bool
	Type     string
}

// ValidationConfig holds validation rules for an endpoint
type ValidationConfig struct {
	Rules              []ValidationRule
	MaxBodySize        int64 // bytes, 0 for unlimited
	AllowUnknownFields bool  // unknown fields are ignored when true, rejected otherwise
	StatusCode         int   // defaults to 422
}

func (cfg ValidationConfig) statusCode() int {
	if cfg.StatusCode == 0 {
		return http.StatusUnprocessableEntity
	}
	return cfg.StatusCode
}

// ValidateInput checks the JSON body against config before the handler runs.
// Violations are reported together as a {"detail":[...]} list, one entry per
// field, with loc ["body", <field>]. Accepted bodies are re-encoded with
// integer fields normalized so handlers can bind them directly.
func ValidateInput(config ValidationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.MaxBodySize > 0 && c.Request.ContentLength > config.MaxBodySize {
			abortBodyTooLarge(c, config.MaxBodySize)
			return
		}

		raw, err := readBody(c.Request.Body, config.MaxBodySize)
		if errors.Is(err, errBodyTooLarge) {
			abortBodyTooLarge(c, config.MaxBodySize)
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, responses.DetailResponse{Detail: "Unable to read request body"})
			return
		}

		body, issue := decodeObject(raw)
		if issue != nil {
			c.AbortWithStatusJSON(config.statusCode(), responses.ValidationErrorResponse{
				Detail: []responses.ValidationIssue{*issue},
			})
			return
		}

		if issues := validateFields(body, config.Rules, config.AllowUnknownFields); len(issues) > 0 {
			c.AbortWithStatusJSON(config.statusCode(), responses.ValidationErrorResponse{Detail: issues})
			return
		}

		bodyBytes, err := json.Marshal(body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, responses.DetailResponse{Detail: "Unable to read request body"})
			return
		}
		c.Set(ValidatedBodyKey, body)
		replaceBody(c.Request, bodyBytes)

		c.Next()
	}
}

// RequireWellFormedJSON rejects bodies that are not syntactically valid JSON
// with the same 422 json_invalid detail ValidateInput produces. It runs ahead
// of authentication so a garbled body is reported as such; field checks are
// left to ValidateInput.
func RequireWellFormedJSON(config ValidationConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := readBody(c.Request.Body, config.MaxBodySize)
		if errors.Is(err, errBodyTooLarge) {
			abortBodyTooLarge(c, config.MaxBodySize)
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, responses.DetailResponse{Detail: "Unable to read request body"})
			return
		}

		if _, issue := decodeObject(raw); issue != nil && issue.Type == "json_invalid" {
			c.AbortWithStatusJSON(config.statusCode(), responses.ValidationErrorResponse{
				Detail: []responses.ValidationIssue{*issue},
			})
			return
		}

		replaceBody(c.Request, raw)
		c.Next()
	}
}

func abortBodyTooLarge(c *gin.Context, limit int64) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, responses.DetailResponse{
		Detail: fmt.Sprintf("Request body too large. Maximum size: %d bytes", limit),
	})
}

// decodeObject parses raw as a single JSON object, keeping numbers as
// json.Number so integers and floats can be told apart.
func decodeObject(raw []byte) (map[string]interface{}, *responses.ValidationIssue) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &responses.ValidationIssue{
			Type: "missing",
			Loc:  []interface{}{"body"},
			Msg:  "Field required",
		}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value interface{}
	err := dec.Decode(&value)
	if err == nil && dec.More() {
		err = errors.New("unexpected data after top-level value")
	}
	if err != nil {
		return nil, &responses.ValidationIssue{
			Type:  "json_invalid",
			Loc:   []interface{}{"body", dec.InputOffset()},
			Msg:   "JSON decode error",
			Input: map[string]interface{}{},
		}
	}

	body, ok := value.(map[string]interface{})
	if !ok {
		return nil, &responses.ValidationIssue{
			Type:  "model_attributes_type",
			Loc:   []interface{}{"body"},
			Msg:   "Input should be a valid dictionary or object to extract fields from",
			Input: displayValue(value),
		}
	}
	return body, nil
}

func validateFields(data map[string]interface{}, rules []ValidationRule, allowUnknown bool) []responses.ValidationIssue {
	var issues []responses.ValidationIssue
	known := make(map[string]bool, len(rules))

	for _, rule := range rules {
		known[rule.Field] = true
		value, exists := data[rule.Field]

		if !exists {
			if rule.Required {
				issues = append(issues, responses.ValidationIssue{
					Type:  "missing",
					Loc:   []interface{}{"body", rule.Field},
					Msg:   "Field required",
					Input: displayMap(data),
				})
			}
			continue
		}

		normalized, issue := checkType(rule, value)
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}
		data[rule.Field] = normalized
	}

	if !allowUnknown {
		for _, field := range sortedKeys(data) {
			if !known[field] {
				issues = append(issues, responses.ValidationIssue{
					Type:  "extra_forbidden",
					Loc:   []interface{}{"body", field},
					Msg:   "Extra inputs are not permitted",
					Input: displayValue(data[field]),
				})
			}
		}
	}

	return issues
}

// checkType validates value against the rule's type and returns it in the
// form it should be re-encoded with. Coercion is lax: 0/1 and the usual
// yes/no words are booleans, numeric strings are numbers, integral floats
// are integers.
func checkType(rule ValidationRule, value interface{}) (interface{}, *responses.ValidationIssue) {
	issue := func(typ, msg string) *responses.ValidationIssue {
		return &responses.ValidationIssue{
			Type:  typ,
			Loc:   []interface{}{"body", rule.Field},
			Msg:   msg,
			Input: displayValue(value),
		}
	}

	switch rule.Type {
	case TypeBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case json.Number:
			f, err := v.Float64()
			if err == nil && (f == 0 || f == 1) {
				return f == 1, nil
			}
			return nil, issue("bool_parsing", "Input should be a valid boolean, unable to interpret input")
		case string:
			if b, ok := boolWords[strings.ToLower(v)]; ok {
				return b, nil
			}
			return nil, issue("bool_parsing", "Input should be a valid boolean, unable to interpret input")
		default:
			return nil, issue("bool_type", "Input should be a valid boolean")
		}

	case TypeInt:
		switch v := value.(type) {
		case json.Number:
			if i, err := v.Int64(); err == nil {
				return i, nil
			}
			f, err := v.Float64()
			if err != nil || !fitsInt64(f) {
				return nil, issue("int_parsing_size", "Unable to parse input string as an integer, exceeds maximum size")
			}
			if f != math.Trunc(f) {
				return nil, issue("int_from_float", "Input should be a valid integer, got a number with a fractional part")
			}
			return int64(f), nil
		case string:
			i, err := parseIntString(v)
			if errors.Is(err, strconv.ErrRange) {
				return nil, issue("int_parsing_size", "Unable to parse input string as an integer, exceeds maximum size")
			}
			if err != nil {
				return nil, issue("int_parsing", "Input should be a valid integer, unable to parse string as an integer")
			}
			return i, nil
		case bool:
			return boolToInt(v), nil
		default:
			return nil, issue("int_type", "Input should be a valid integer")
		}

	case TypeNumber:
		switch v := value.(type) {
		case json.Number:
			f, err := v.Float64()
			if err != nil || math.IsInf(f, 0) {
				return nil, issue("finite_number", "Input should be a finite number")
			}
			return f, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return nil, issue("float_parsing", "Input should be a valid number, unable to parse string as a number")
			}
			if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
				return nil, issue("finite_number", "Input should be a finite number")
			}
			return f, nil
		case bool:
			return float64(boolToInt(v)), nil
		default:
			return nil, issue("float_type", "Input should be a valid number")
		}

	case TypeString:
		if _, ok := value.(string); !ok {
			return nil, issue("string_type", "Input should be a valid string")
		}
		return value, nil
	}

	return value, nil
}

var boolWords = map[string]bool{
	"0": false, "off": false, "f": false, "false": false, "n": false, "no": false,
	"1": true, "on": true, "t": true, "true": true, "y": true, "yes": true,
}

// fitsInt64 reports whether f converts to int64 without wrapping.
// float64(math.MaxInt64) rounds up to 2^63, hence the strict bound.
func fitsInt64(f float64) bool {
	return !math.IsNaN(f) && f >= math.MinInt64 && f < math.MaxInt64
}

// parseIntString accepts surrounding whitespace and a zero fraction ("24.0").
func parseIntString(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if whole, frac, ok := strings.Cut(s, "."); ok && frac != "" && strings.Trim(frac, "0") == "" {
		s = whole
	}
	return strconv.ParseInt(s, 10, 64)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// displayValue converts decoded JSON for echoing back in an error.
func displayValue(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil && !math.IsInf(f, 0) {
			return f
		}
		return t.String()
	case map[string]interface{}:
		return displayMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = displayValue(item)
		}
		return out
	default:
		return v
	}
}

func displayMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = displayValue(v)
	}
	return out
}

func sortedKeys(m map[string]interface{}) []string {
	return slices.Sorted(maps.Keys(m))
}
