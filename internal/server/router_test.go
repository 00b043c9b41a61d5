package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapContextFuncSkipsBodies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, path := range []string{"/login", "/register", "/chat/messages", "/ratings"} {
		t.Run(path, func(t *testing.T) {
			form := url.Values{"message": {"secret text"}, "password": {"pw"}}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
			c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			c.Request.Header.Set("HX-Target", "chatbot-messages")

			fields := zapContextFunc()(c)

			keys := make([]string, 0, len(fields))
			for _, f := range fields {
				keys = append(keys, f.Key)
			}
			assert.NotContains(t, keys, "body")
			assert.Contains(t, keys, "hx_target")

			require.NoError(t, c.Request.ParseForm())
			assert.Equal(t, "secret text", c.Request.PostForm.Get("message"), "body is left for the handler")
		})
	}
}
