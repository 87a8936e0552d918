package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/utils/errutil"
)

// signedURLTTL bounds how long an upload's read URL stays valid
const signedURLTTL = 24 * time.Hour

// maxUploadSize caps a single media upload at 32 MiB
const maxUploadSize = 32 << 20

type mediaUploadResponse struct {
	Ref       string `json:"ref"`
	SignedURL string `json:"signedUrl,omitempty"`
}

// mediaUploadHandler stores the request body as a media blob and returns
// its reference together with a time-limited read URL. The blob store is
// optional; without one the endpoint is explicitly unimplemented rather
// than silently dropping data.
func mediaUploadHandler(store interfaces.MediaStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			http.Error(w, "media storage is not configured", http.StatusNotImplemented)
			return
		}

		ownerID := types.OwnerID(chi.URLParam(r, "ownerID"))
		if err := ownerID.Validate(); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "media upload rejected"), http.StatusBadRequest)
			return
		}

		name := r.URL.Query().Get("name")
		if name == "" {
			name = "upload"
		}
		contentType := r.Header.Get("Content-Type")

		body := http.MaxBytesReader(w, r.Body, maxUploadSize)
		ref, err := store.Put(r.Context(), ownerID, name, contentType, body)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to store media blob",
				goerr.V("ownerID", ownerID),
				goerr.V("name", name),
			), http.StatusInternalServerError)
			return
		}

		resp := mediaUploadResponse{Ref: ref}
		if url, err := store.SignedURL(r.Context(), ref, signedURLTTL); err != nil {
			// The blob is stored; a signing failure only degrades the
			// response.
			errutil.Handle(r.Context(), err, "failed to sign media URL")
		} else {
			resp.SignedURL = url
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			errutil.Handle(r.Context(), err, "failed to write media response")
		}
	}
}
