package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ratna-shop/internal/http/response"
	"github.com/ratna-shop/internal/oauth"
	"github.com/ratna-shop/internal/service"
	"github.com/ratna-shop/internal/shipping/shiprocket"

	"github.com/gin-gonic/gin"
)

func respondStatusCode(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondServiceError(c, err)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if uerr := json.Unmarshal(w.Body.Bytes(), &resp); uerr != nil {
		t.Fatalf("unmarshal response failed: %v", uerr)
	}
	return resp.StatusCode
}

func TestRespondServiceError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "coupon not found", err: service.ErrCouponNotFound, want: response.CodeNotFound},
		{name: "below minimum", err: service.ErrCouponMinAmount, want: response.CodeBadRequest},
		{name: "oauth token invalid", err: oauth.ErrTokenInvalid, want: response.CodeUnauthorized},
		{name: "oauth audience mismatch", err: oauth.ErrAudienceInvalid, want: response.CodeUnauthorized},
		{name: "oauth email missing", err: oauth.ErrEmailMissing, want: response.CodeUnauthorized},
		{name: "oauth provider down", err: oauth.ErrRequestFailed, want: response.CodeBadGateway},
		{name: "wrapped oauth invalid", err: fmt.Errorf("google: %w", oauth.ErrTokenInvalid), want: response.CodeUnauthorized},
		{name: "courier auth failed", err: shiprocket.ErrAuthFailed, want: response.CodeBadGateway},
		{name: "unknown", err: fmt.Errorf("boom"), want: response.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := respondStatusCode(t, tc.err)
			if got != tc.want {
				t.Fatalf("status_code want %d got %d", tc.want, got)
			}
		})
	}
}
