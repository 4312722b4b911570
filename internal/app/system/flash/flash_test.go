package flash_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/k36p/Midad/internal/app/system/flash"
	"go.uber.org/zap"
)

// carryCookies copies the response cookies onto the next request the way a
// browser would: the last Set-Cookie per name wins.
func carryCookies(t *testing.T, from *httptest.ResponseRecorder, req *http.Request) {
	t.Helper()
	last := map[string]*http.Cookie{}
	order := []string{}
	for _, c := range from.Result().Cookies() {
		if _, seen := last[c.Name]; !seen {
			order = append(order, c.Name)
		}
		last[c.Name] = c
	}
	for _, name := range order {
		req.AddCookie(last[name])
	}
}

func TestNoticeSurvivesRedirectOnce(t *testing.T) {
	flash.Init("midad-flash-test", "flash-test-key-0123456789abcdef", false, zap.NewNop())

	// The form post stores the notice.
	post := httptest.NewRequest("POST", "/bookmarks/add", nil)
	postRec := httptest.NewRecorder()
	flash.Notice(postRec, post, "تم حفظ المادة بنجاح")

	// The redirected page render pops it.
	page := httptest.NewRequest("GET", "/book/x", nil)
	carryCookies(t, postRec, page)
	pageRec := httptest.NewRecorder()
	notices, alerts := flash.Pop(pageRec, page)

	if len(notices) != 1 || notices[0] != "تم حفظ المادة بنجاح" {
		t.Fatalf("expected the stored notice, got %v", notices)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alerts, got %v", alerts)
	}

	// A reload after the pop sees nothing.
	reload := httptest.NewRequest("GET", "/book/x", nil)
	carryCookies(t, pageRec, reload)
	notices, alerts = flash.Pop(httptest.NewRecorder(), reload)
	if len(notices) != 0 || len(alerts) != 0 {
		t.Errorf("notices must be one-shot, got %v %v", notices, alerts)
	}
}

func TestNoticesAndAlertsKeptApart(t *testing.T) {
	flash.Init("midad-flash-test", "flash-test-key-0123456789abcdef", false, zap.NewNop())

	post := httptest.NewRequest("POST", "/colleges", nil)
	postRec := httptest.NewRecorder()
	flash.Notice(postRec, post, "notice")
	flash.Alert(postRec, post, "alert")

	page := httptest.NewRequest("GET", "/dash/colleges", nil)
	carryCookies(t, postRec, page)
	notices, alerts := flash.Pop(httptest.NewRecorder(), page)

	if len(notices) != 1 || notices[0] != "notice" {
		t.Errorf("unexpected notices: %v", notices)
	}
	if len(alerts) != 1 || alerts[0] != "alert" {
		t.Errorf("unexpected alerts: %v", alerts)
	}
}
