package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/matt-g-everett/linefractal/fractal"
	"github.com/matt-g-everett/linefractal/stream"
)

const maxBody = 1 << 16

var errInvalidParams = errors.New("invalid parameters")

// Api serves the live parameter editor, the websocket frame feed and the
// static browser client.
type Api struct {
	controller *stream.Controller
	hub        *Hub
	mux        *http.ServeMux
}

// NewApi creates an instance of an Api.
func NewApi(controller *stream.Controller, hub *Hub, staticDir string) *Api {
	a := new(Api)
	a.controller = controller
	a.hub = hub

	a.mux = http.NewServeMux()
	a.mux.Handle("GET /ws", hub)
	a.mux.HandleFunc("GET /params", a.getParams)
	a.mux.HandleFunc("PUT /params", a.putParams)
	a.mux.HandleFunc("POST /variant/{kind}", a.postVariant)
	a.mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	return a
}

// Handler returns the root handler.
func (a *Api) Handler() http.Handler {
	return a.mux
}

// Serve listens on addr until ctx is cancelled.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on %s...", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ParamsResponse is the JSON form of the active fractal.
type ParamsResponse struct {
	Kind   fractal.Kind `json:"kind"`
	Params any          `json:"params"`
}

func snapshot(f fractal.Fractal) ParamsResponse {
	resp := ParamsResponse{Kind: f.Kind()}
	switch f := f.(type) {
	case *fractal.Chain:
		resp.Params = f.Params
	case *fractal.Tree:
		resp.Params = f.Params
	}
	return resp
}

func (a *Api) getParams(w http.ResponseWriter, r *http.Request) {
	var resp ParamsResponse
	err := a.controller.Edit(r.Context(), func(f fractal.Fractal) error {
		resp = snapshot(f)
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, resp)
}

// putParams merges the JSON body into the active fractal's parameters. Values
// outside the panel ranges are rejected and leave the fractal untouched.
func (a *Api) putParams(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var resp ParamsResponse
	err = a.controller.Edit(r.Context(), func(f fractal.Fractal) error {
		switch f := f.(type) {
		case *fractal.Chain:
			p := f.Params
			p.Stroke = p.Stroke.Clone()
			if err := decodeParams(body, &p, func() error { return p.Validate() }); err != nil {
				return err
			}
			f.Params = p
		case *fractal.Tree:
			p := f.Params
			p.Stroke = p.Stroke.Clone()
			if err := decodeParams(body, &p, func() error { return p.Validate() }); err != nil {
				return err
			}
			f.Params = p
		}
		resp = snapshot(f)
		return nil
	})
	if errors.Is(err, errInvalidParams) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, resp)
}

// decodeParams merges body into p and checks the result. p must not share
// pointers with the live parameters.
func decodeParams(body []byte, p any, validate func() error) error {
	if err := json.Unmarshal(body, p); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	if err := validate(); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return nil
}

func (a *Api) postVariant(w http.ResponseWriter, r *http.Request) {
	kind := fractal.Kind(r.PathValue("kind"))
	err := a.controller.Select(r.Context(), kind)
	if errors.Is(err, stream.ErrUnknownVariant) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}
