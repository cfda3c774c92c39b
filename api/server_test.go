package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/matt-g-everett/linefractal/stream"
)

type testParams struct {
	Kind   string `json:"kind"`
	Params struct {
		Arms   int `json:"arms"`
		Depth  int `json:"depth"`
		Stroke struct {
			Colour string `json:"colour"`
			Tail   string `json:"tail"`
		} `json:"stroke"`
	} `json:"params"`
}

func newTestServer(t *testing.T) (*httptest.Server, *Hub) {
	t.Helper()
	config := stream.DefaultConfig()
	config.FrameRate = 100
	hub := NewHub()
	controller, err := stream.NewController(config, hub)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		controller.Run(ctx)
		close(done)
	}()

	srv := httptest.NewServer(NewApi(controller, hub, t.TempDir()).Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
	})
	return srv, hub
}

func getParams(t *testing.T, url string) testParams {
	t.Helper()
	resp, err := http.Get(url + "/params")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var p testParams
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	return p
}

func do(t *testing.T, method, url, body string) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestParams(t *testing.T) {
	srv, _ := newTestServer(t)

	p := getParams(t, srv.URL)
	if p.Kind != "tree" || p.Params.Arms != 3 || p.Params.Depth != 8 || p.Params.Stroke.Colour != "#ffffff" {
		t.Fatalf("params = %+v", p)
	}

	if code := do(t, http.MethodPut, srv.URL+"/params", `{"arms": 5}`); code != http.StatusOK {
		t.Fatalf("put status = %d", code)
	}
	p = getParams(t, srv.URL)
	if p.Params.Arms != 5 || p.Params.Depth != 8 {
		t.Errorf("after put: %+v", p)
	}

	if code := do(t, http.MethodPut, srv.URL+"/params", `{"arms": "many"}`); code != http.StatusBadRequest {
		t.Errorf("bad put status = %d", code)
	}
	if code := do(t, http.MethodPut, srv.URL+"/params", `{"stroke": {"colour": "red"}}`); code != http.StatusBadRequest {
		t.Errorf("bad colour status = %d", code)
	}
}

func TestParamsOutOfRange(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, body := range []string{`{"depth": 30}`, `{"arms": 11}`, `{"arms": 0}`, `{"lengthFactor": 5}`} {
		if code := do(t, http.MethodPut, srv.URL+"/params", body); code != http.StatusBadRequest {
			t.Errorf("tree %s: status = %d, want 400", body, code)
		}
	}

	do(t, http.MethodPost, srv.URL+"/variant/chain", "")
	for _, body := range []string{`{"depth": 4000000000}`, `{"arms": 21}`} {
		if code := do(t, http.MethodPut, srv.URL+"/params", body); code != http.StatusBadRequest {
			t.Errorf("chain %s: status = %d, want 400", body, code)
		}
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(srv.URL + "/params")
	if err != nil {
		t.Fatalf("frame loop stalled: %v", err)
	}
	defer resp.Body.Close()
	var p testParams
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Params.Depth != 35 || p.Params.Arms != 3 {
		t.Errorf("rejected write changed params: %+v", p)
	}
}

func TestParamsRejectedWriteKeepsTail(t *testing.T) {
	srv, _ := newTestServer(t)

	if code := do(t, http.MethodPut, srv.URL+"/params", `{"stroke": {"tail": "#0000ff"}}`); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	body := `{"stroke": {"tail": "#00ff00"}, "arms": "x"}`
	if code := do(t, http.MethodPut, srv.URL+"/params", body); code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	body = `{"stroke": {"tail": "#00ff00"}, "depth": 30}`
	if code := do(t, http.MethodPut, srv.URL+"/params", body); code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}

	if p := getParams(t, srv.URL); p.Params.Stroke.Tail != "#0000ff" {
		t.Errorf("tail = %q, want #0000ff", p.Params.Stroke.Tail)
	}
}

func TestVariant(t *testing.T) {
	srv, _ := newTestServer(t)

	if code := do(t, http.MethodPost, srv.URL+"/variant/chain", ""); code != http.StatusNoContent {
		t.Fatalf("status = %d", code)
	}
	p := getParams(t, srv.URL)
	if p.Kind != "chain" || p.Params.Depth != 35 {
		t.Errorf("params = %+v", p)
	}

	if code := do(t, http.MethodPost, srv.URL+"/variant/mandelbrot", ""); code != http.StatusBadRequest {
		t.Errorf("unknown variant status = %d", code)
	}
}

func TestWebsocketFrames(t *testing.T) {
	srv, hub := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.CloseNow()
	c.SetReadLimit(1 << 24)

	typ, data, err := c.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if typ != websocket.MessageBinary {
		t.Errorf("message type = %v", typ)
	}

	var f stream.Frame
	if err := f.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if f.Seq == 0 || len(f.Segments) != 3279 {
		t.Errorf("frame %d has %d segments", f.Seq, len(f.Segments))
	}
	if hub.Clients() != 1 {
		t.Errorf("clients = %d", hub.Clients())
	}
}
