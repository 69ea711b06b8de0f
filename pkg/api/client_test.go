package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/datadiver/diver/pkg/api"
)

var _ = Describe("Client", func() {
	Describe("Collections", func() {
		It("should list collections", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodGet))
				Expect(r.URL.Path).To(Equal("/collections"))
				json.NewEncoder(w).Encode(map[string]any{
					"collections": []map[string]any{
						{"id": "col-1", "name": "Contracts", "document_count": 4},
					},
				})
			}))
			defer server.Close()

			client := api.NewClient(server.URL)
			collections, err := client.ListCollections(context.Background())

			Expect(err).ToNot(HaveOccurred())
			Expect(collections).To(HaveLen(1))
			Expect(collections[0].Name).To(Equal("Contracts"))
			Expect(collections[0].DocumentCount).To(Equal(4))
		})

		It("should create a collection", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				var req api.CreateCollectionRequest
				json.NewDecoder(r.Body).Decode(&req)
				Expect(req.Name).To(Equal("Reports"))
				json.NewEncoder(w).Encode(api.Collection{ID: "col-2", Name: req.Name})
			}))
			defer server.Close()

			client := api.NewClient(server.URL)
			created, err := client.CreateCollection(context.Background(), api.CreateCollectionRequest{Name: "Reports"})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).To(Equal("col-2"))
		})
	})

	Describe("Documents", func() {
		It("should filter documents by collection", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("collection_id")).To(Equal("col-1"))
				json.NewEncoder(w).Encode(map[string]any{
					"documents": []map[string]any{{"id": "doc-1", "title": "NDA"}},
				})
			}))
			defer server.Close()

			client := api.NewClient(server.URL)
			documents, err := client.ListDocuments(context.Background(), "col-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(documents).To(HaveLen(1))
		})

		It("should move a document to a collection", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPut))
				Expect(r.URL.Path).To(Equal("/documents/doc-1/collection"))
				var body map[string]string
				json.NewDecoder(r.Body).Decode(&body)
				Expect(body["collection_id"]).To(Equal("col-2"))
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := api.NewClient(server.URL)
			Expect(client.MoveDocument(context.Background(), "doc-1", "col-2")).To(Succeed())
		})
	})

	Describe("error handling", func() {
		It("should decode structured backend errors", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"detail": "collection not found"}`)
			}))
			defer server.Close()

			client := api.NewClient(server.URL)
			_, err := client.GetDocument(context.Background(), "missing")

			Expect(err).To(HaveOccurred())
			Expect(api.IsNotFound(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("collection not found"))
		})

		It("should not trip the breaker on 4xx responses", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			client := api.NewClient(server.URL)
			for i := 0; i < 10; i++ {
				_, err := client.GetDocument(context.Background(), "missing")
				Expect(api.IsNotFound(err)).To(BeTrue(), "request %d should still reach the backend", i)
			}
		})

		It("should open the breaker after repeated transport failures", func() {
			client := api.NewClientWithTimeout("http://127.0.0.1:1", time.Second)

			for i := 0; i < 6; i++ {
				client.ListCollections(context.Background())
			}

			_, err := client.ListCollections(context.Background())
			Expect(errors.Is(err, api.ErrUnavailable)).To(BeTrue())
		})
	})

	Describe("Stream", func() {
		It("should hand the raw body to the caller", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("Accept")).To(Equal("text/event-stream"))
				fmt.Fprint(w, "data: {\"type\": \"end\"}\n")
			}))
			defer server.Close()

			client := api.NewClient(server.URL)
			body, err := client.Stream(context.Background(), http.MethodPost, "/chat/stream", map[string]string{"message": "hi"})

			Expect(err).ToNot(HaveOccurred())
			defer body.Close()
			raw, err := io.ReadAll(body)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(`"type": "end"`))
		})
	})

	Describe("CheckHealth", func() {
		It("should report an available backend", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/health"))
				json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "version": "0.4.1"})
			}))
			defer server.Close()

			client := api.NewClient(server.URL)
			status, err := client.CheckHealth(context.Background())

			Expect(err).ToNot(HaveOccurred())
			Expect(status.Available).To(BeTrue())
			Expect(status.Version).To(Equal("0.4.1"))
		})

		It("should report an unreachable backend through the status", func() {
			client := api.NewClientWithTimeout("http://127.0.0.1:1", time.Second)
			status, err := client.CheckHealth(context.Background())

			Expect(err).ToNot(HaveOccurred())
			Expect(status.Available).To(BeFalse())
			Expect(status.Error).To(HaveOccurred())
		})
	})
})
