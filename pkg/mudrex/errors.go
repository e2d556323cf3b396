package mudrex

import (
	"fmt"
	"strings"
	"time"

	"github.com/mudrex/mudrex-go/pkg/models"
)

// ErrorKind is the closed taxonomy every remote failure is translated into.
type ErrorKind string

const (
	KindAPI                 ErrorKind = "api_error"
	KindAuthentication      ErrorKind = "authentication"
	KindRateLimit           ErrorKind = "rate_limit"
	KindValidation          ErrorKind = "validation"
	KindNotFound            ErrorKind = "not_found"
	KindConflict            ErrorKind = "conflict"
	KindServer              ErrorKind = "server_error"
	KindInsufficientBalance ErrorKind = "insufficient_balance"
	KindOrder               ErrorKind = "order"
	KindPosition            ErrorKind = "position"
)

// APIError is the single error type surfaced for remote failures and
// locally-detected invalid input. It carries remediation suggestions
// aimed at a human (or an agent) reading the message.
type APIError struct {
	Kind        ErrorKind
	Message     string
	Code        string
	StatusCode  int
	RequestID   string
	RetryAfter  time.Duration
	Suggestions []string
	Response    map[string]any
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Code != "" && e.Code != "UNKNOWN_ERROR" {
		fmt.Fprintf(&b, " (code: %s)", e.Code)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " [HTTP %d]", e.StatusCode)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " request_id=%s", e.RequestID)
	}
	return b.String()
}

// Is allows errors.Is matching against kind sentinels.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind && t.Message == "" && t.Code == ""
}

// Kind sentinels for errors.Is.
var (
	ErrAuthentication      = &APIError{Kind: KindAuthentication}
	ErrRateLimit           = &APIError{Kind: KindRateLimit}
	ErrValidation          = &APIError{Kind: KindValidation}
	ErrNotFound            = &APIError{Kind: KindNotFound}
	ErrConflict            = &APIError{Kind: KindConflict}
	ErrServer              = &APIError{Kind: KindServer}
	ErrInsufficientBalance = &APIError{Kind: KindInsufficientBalance}
)

var kindSuggestions = map[ErrorKind][]string{
	KindAPI: {
		"Check the API documentation at https://docs.trade.mudrex.com",
		"If the issue persists, contact Mudrex support with the request ID",
	},
	KindAuthentication: {
		"Verify your API secret is correct (copy it again from the Mudrex dashboard)",
		"Check if your API key has expired or been revoked",
		"Ensure KYC verification is complete on your Mudrex account",
		"Generate a new API key if needed: Dashboard -> API Keys -> Generate",
	},
	KindRateLimit: {
		"Wait before making more requests (see RetryAfter)",
		"The client has built-in rate limiting - keep it enabled",
		"Reduce request frequency or batch operations where possible",
	},
	KindValidation: {
		"Check that all parameter values are valid",
		"Ensure quantity is a multiple of the asset's quantity_step",
		"Verify leverage is within min_leverage and max_leverage for the asset",
		"Use client.Assets.Get(\"SYMBOL\") to check asset specifications",
	},
	KindNotFound: {
		"Check that the symbol/ID is correct",
		"Use client.Assets.ListAll() to see all available trading pairs",
		"Use client.Assets.Search(\"keyword\") to find similar symbols",
		"The order/position may have already been filled, cancelled, or closed",
	},
	KindConflict: {
		"The action may have already been performed",
		"Refresh your position/order list before retrying",
		"Wait a moment and check the current state before retrying",
	},
	KindServer: {
		"This is usually a temporary issue - wait and retry",
		"Use exponential backoff: wait 1s, then 2s, then 4s",
		"Check the Mudrex status page for any ongoing issues",
	},
	KindInsufficientBalance: {
		"Check your futures wallet balance: client.Wallet.FuturesBalance()",
		"Transfer funds from spot to futures: client.Wallet.TransferToFutures(\"100\")",
		"Reduce your order size or leverage",
		"Close some existing positions to free up margin",
	},
	KindOrder: {
		"Check if the market is currently open for trading",
		"Verify order quantity is within min/max limits for this asset",
		"For limit orders, ensure price is within the allowed range",
	},
	KindPosition: {
		"Check if the position still exists: client.Positions.ListOpen()",
		"The position may have been closed by stop-loss/take-profit",
		"Verify stop-loss is below entry (for LONG) or above (for SHORT)",
		"Verify take-profit is above entry (for LONG) or below (for SHORT)",
	},
}

var validationSuggestions = map[string][]string{
	"quantity": {
		"Quantity must be a multiple of the asset's quantity_step",
		"Use client.Assets.Get(\"SYMBOL\") to find the correct quantity_step",
		"The client auto-rounds quantities, but extreme values may still fail",
	},
	"leverage": {
		"Leverage must be between min_leverage and max_leverage for this asset",
		"Use client.Assets.Get(\"SYMBOL\") to check the allowed leverage range",
		"Example: BTC allows 1x-100x, some altcoins have lower limits",
	},
	"symbol": {
		"Make sure the symbol exists (e.g. \"BTCUSDT\", \"ETHUSDT\")",
		"Use client.Assets.Search(\"BTC\") to find valid symbols",
		"Use client.Assets.Exists(\"SYMBOL\") to check if tradable",
	},
}

var errorCodeKinds = map[string]ErrorKind{
	"UNAUTHORIZED":    KindAuthentication,
	"FORBIDDEN":       KindAuthentication,
	"INVALID_API_KEY": KindAuthentication,
	"API_KEY_EXPIRED": KindAuthentication,

	"RATE_LIMIT_EXCEEDED": KindRateLimit,
	"TOO_MANY_REQUESTS":   KindRateLimit,

	"INVALID_REQUEST":   KindValidation,
	"VALIDATION_ERROR":  KindValidation,
	"BAD_REQUEST":       KindValidation,
	"INVALID_PARAMETER": KindValidation,

	"NOT_FOUND":          KindNotFound,
	"ASSET_NOT_FOUND":    KindNotFound,
	"ORDER_NOT_FOUND":    KindNotFound,
	"POSITION_NOT_FOUND": KindNotFound,

	"CONFLICT":  KindConflict,
	"DUPLICATE": KindConflict,

	"SERVER_ERROR":        KindServer,
	"INTERNAL_ERROR":      KindServer,
	"SERVICE_UNAVAILABLE": KindServer,

	"INSUFFICIENT_BALANCE": KindInsufficientBalance,
	"INSUFFICIENT_MARGIN":  KindInsufficientBalance,
	"INSUFFICIENT_FUNDS":   KindInsufficientBalance,

	"ORDER_REJECTED": KindOrder,
	"ORDER_FAILED":   KindOrder,

	"POSITION_ERROR":  KindPosition,
	"POSITION_CLOSED": KindPosition,
}

var errorCodeMessages = map[string]string{
	"UNAUTHORIZED":         "Your API key is invalid or has expired",
	"FORBIDDEN":            "You don't have permission to perform this action",
	"RATE_LIMIT_EXCEEDED":  "You've exceeded the rate limit - please slow down",
	"INVALID_REQUEST":      "The request parameters are invalid",
	"NOT_FOUND":            "The requested resource was not found",
	"INSUFFICIENT_BALANCE": "You don't have enough balance for this operation",
	"SERVER_ERROR":         "The server encountered an error - please retry",
}

// newError builds an APIError for the given kind, picking the kind's
// default suggestion set. Validation errors are sub-classified by the
// message text.
func newError(kind ErrorKind, message string) *APIError {
	e := &APIError{Kind: kind, Message: message}
	e.Suggestions = suggestionsFor(kind, message)
	return e
}

func suggestionsFor(kind ErrorKind, message string) []string {
	if kind == KindValidation {
		lower := strings.ToLower(message)
		switch {
		case strings.Contains(lower, "quantity") || strings.Contains(lower, "step"):
			return validationSuggestions["quantity"]
		case strings.Contains(lower, "leverage"):
			return validationSuggestions["leverage"]
		case strings.Contains(lower, "symbol") || strings.Contains(lower, "asset") ||
			strings.Contains(lower, "not found"):
			return validationSuggestions["symbol"]
		}
	}
	if s, ok := kindSuggestions[kind]; ok {
		return s
	}
	return kindSuggestions[KindAPI]
}

// classifyResponse inspects a decoded response body and status code and
// returns the matching APIError, or nil when the response is a success.
func classifyResponse(body map[string]any, status int) *APIError {
	if status < 400 {
		if success, ok := body["success"].(bool); !ok || success {
			return nil
		}
	}

	code := "UNKNOWN_ERROR"
	if c, ok := body["code"].(string); ok && c != "" {
		code = c
	}
	message := models.AsString(body["message"])
	requestID := models.AsString(body["requestId"])
	if requestID == "" {
		requestID = models.AsString(body["request_id"])
	}

	// The API commonly reports details through an errors array; flatten it
	// into the message and prefer its code.
	if errs, ok := body["errors"].([]any); ok && len(errs) > 0 {
		var texts []string
		for _, e := range errs {
			if m, ok := e.(map[string]any); ok {
				if t := models.AsString(m["text"]); t != "" {
					texts = append(texts, t)
				} else if t := models.AsString(m["message"]); t != "" {
					texts = append(texts, t)
				}
			} else if s := models.AsString(e); s != "" {
				texts = append(texts, s)
			}
		}
		if len(texts) > 0 {
			message = strings.Join(texts, "; ")
		}
		if m, ok := errs[0].(map[string]any); ok {
			if c := models.AsString(m["code"]); c != "" {
				code = c
			}
		}
	}

	if message == "" || message == "An unknown error occurred" {
		if m, ok := errorCodeMessages[code]; ok {
			message = m
		} else {
			message = fmt.Sprintf("An error occurred (code: %s)", code)
		}
	}
	message = humanizeMessage(message)

	kind, ok := errorCodeKinds[code]
	if !ok {
		kind = kindForStatus(status)
	}

	e := newError(kind, message)
	e.Code = code
	e.StatusCode = status
	e.RequestID = requestID
	e.Response = body
	if kind == KindRateLimit {
		if ra := models.Float(models.AsString(body["retry_after"])); ra > 0 {
			e.RetryAfter = time.Duration(ra * float64(time.Second))
		}
	}
	return e
}

// kindForStatus is the fallback mapping used when the error code is
// unrecognized.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return KindAuthentication
	case status == 404:
		return KindNotFound
	case status == 429:
		return KindRateLimit
	case status == 409:
		return KindConflict
	case status >= 500:
		return KindServer
	case status == 400:
		return KindValidation
	default:
		return KindAPI
	}
}

var humanTerms = []struct{ from, to string }{
	{"asset_id", "symbol/asset"},
	{"order_id", "order ID"},
	{"position_id", "position ID"},
	{"quantity_step", "quantity increment"},
	{"min_quantity", "minimum quantity"},
	{"max_quantity", "maximum quantity"},
}

func humanizeMessage(message string) string {
	for _, t := range humanTerms {
		message = strings.ReplaceAll(message, t.from, t.to)
	}
	if message != "" {
		r := []rune(message)
		if r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - 'a' + 'A'
			message = string(r)
		}
	}
	return message
}
