package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/restpad/restpad/internal/adapters/http/api"
	repository "github.com/restpad/restpad/internal/adapters/repository"
	"github.com/restpad/restpad/internal/domain/resource"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps backs the handlers with a real memstore so merge semantics
// are exercised end to end.
type mockDeps struct {
	store *repository.MemStore
	stats map[string]interface{}
}

func newMockDeps() *mockDeps {
	return &mockDeps{
		store: repository.NewMemStore(),
		stats: map[string]interface{}{"started": true},
	}
}

func (m *mockDeps) Resource(ctx context.Context) resource.Resource {
	return m.store.Get(ctx)
}

func (m *mockDeps) MergeResource(ctx context.Context, p resource.Patch) (resource.Resource, error) {
	return m.store.Merge(ctx, p)
}

func (m *mockDeps) BuildResource(_ context.Context, p resource.Patch) (resource.Resource, error) {
	return resource.Build(p)
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return m.stats
}

func newTestMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServerRegister(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)

		Convey("Then the root status endpoint should be accessible", func() {
			w := doRequest(mux, "GET", "/", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"status":"online","nest":{"test":5}}`)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
		})

		Convey("And unknown paths should 404", func() {
			w := doRequest(mux, "GET", "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And the health endpoint should serve metrics", func() {
			w := doRequest(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint should serve JSON", func() {
			w := doRequest(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			var stats map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["started"], ShouldBeTrue)
		})

		Convey("And every response should carry a request id", func() {
			w := doRequest(mux, "GET", "/", "")
			So(w.Header().Get("X-Request-Id"), ShouldNotBeEmpty)
		})

		Convey("And a client-provided request id should be echoed", func() {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("X-Request-Id", "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get("X-Request-Id"), ShouldEqual, "abc-123")
		})
	})
}

func TestResourceGet(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)

		Convey("When getting the resource without query parameters", func() {
			w := doRequest(mux, "GET", "/test_resource", "")

			Convey("Then it should return the default resource alone", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got resource.Resource
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldResemble, resource.Default())
				So(w.Body.String(), ShouldNotContainSubstring, "extras")
			})
		})

		Convey("When getting with both query parameters", func() {
			w := doRequest(mux, "GET", "/test_resource?first=a&second=b", "")

			Convey("Then it should wrap the resource with extras", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got struct {
					Resource resource.Resource `json:"resource"`
					Extras   struct {
						First  *string `json:"first"`
						Second *string `json:"second"`
					} `json:"extras"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Resource, ShouldResemble, resource.Default())
				So(got.Extras.First, ShouldNotBeNil)
				So(*got.Extras.First, ShouldEqual, "a")
				So(got.Extras.Second, ShouldNotBeNil)
				So(*got.Extras.Second, ShouldEqual, "b")
			})
		})

		Convey("When getting with only the first parameter", func() {
			w := doRequest(mux, "GET", "/test_resource?first=a", "")

			Convey("Then the second extra should be null", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"first":"a"`)
				So(w.Body.String(), ShouldContainSubstring, `"second":null`)
			})
		})
	})
}

func TestResourcePut(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)
		ctx := context.Background()

		Convey("When putting a single field", func() {
			w := doRequest(mux, "PUT", "/test_resource", `{"name":"renamed"}`)

			Convey("Then only that field should change", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got resource.Resource
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Name, ShouldEqual, "renamed")
				So(got.Location, ShouldEqual, resource.Default().Location)
				So(got.Endpoints, ShouldEqual, resource.Default().Endpoints)
				So(got.HasValues, ShouldEqual, resource.Default().HasValues)
			})

			Convey("And a following GET should see it", func() {
				w := doRequest(mux, "GET", "/test_resource", "")
				So(w.Body.String(), ShouldContainSubstring, `"name":"renamed"`)
			})
		})

		Convey("When putting an unknown field", func() {
			w := doRequest(mux, "PUT", "/test_resource", `{"name":"renamed","bogus":1}`)

			Convey("Then it should reject with the exact error body", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"bad body param"}`)
			})

			Convey("And nothing should persist, not even the known field", func() {
				So(deps.store.Get(ctx), ShouldResemble, resource.Default())
			})
		})

		Convey("When putting a wrong-typed value", func() {
			w := doRequest(mux, "PUT", "/test_resource", `{"endpoints":"lots"}`)

			Convey("Then it should reject and leave the resource unchanged", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"bad body param"}`)
				So(deps.store.Get(ctx), ShouldResemble, resource.Default())
			})
		})

		Convey("When putting malformed JSON", func() {
			w := doRequest(mux, "PUT", "/test_resource", `{"name":`)

			Convey("Then it should reject with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"bad body param"}`)
			})
		})

		Convey("When putting a non-object body", func() {
			w := doRequest(mux, "PUT", "/test_resource", `[1,2,3]`)

			Convey("Then it should reject with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"bad body param"}`)
			})
		})
	})
}

func TestResourcePost(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)
		ctx := context.Background()

		Convey("When posting all four fields", func() {
			body := `{"name":"fresh","location":"there","endpoints":9,"has_values":false}`
			w := doRequest(mux, "POST", "/test_resource", body)

			Convey("Then it should return 201 with exactly those fields", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)

				var got resource.Resource
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldResemble, resource.Resource{
					Name:      "fresh",
					Location:  "there",
					Endpoints: 9,
					HasValues: false,
				})
			})

			Convey("And the shared resource should be unchanged", func() {
				So(deps.store.Get(ctx), ShouldResemble, resource.Default())
			})
		})

		Convey("When posting without endpoints", func() {
			body := `{"name":"fresh","location":"there","has_values":false}`
			w := doRequest(mux, "POST", "/test_resource", body)

			Convey("Then the error should name the missing field", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"missing field endpoints"}`)
			})
		})

		Convey("When posting an empty object", func() {
			w := doRequest(mux, "POST", "/test_resource", `{}`)

			Convey("Then the first field in canonical order should be reported", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"missing field name"}`)
			})
		})

		Convey("When posting a wrong-typed field", func() {
			body := `{"name":"fresh","location":"there","endpoints":"x","has_values":false}`
			w := doRequest(mux, "POST", "/test_resource", body)

			Convey("Then it should reject with the bad-body error", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"bad body param"}`)
			})
		})
	})
}

func TestResourceDeleteAndMethods(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newMockDeps()
		mux := newTestMux(deps)
		ctx := context.Background()

		Convey("When deleting the resource", func() {
			w := doRequest(mux, "DELETE", "/test_resource", "")

			Convey("Then it should acknowledge with an empty 200", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.Len(), ShouldEqual, 0)
			})

			Convey("And the resource should survive", func() {
				So(deps.store.Get(ctx), ShouldResemble, resource.Default())
			})
		})

		Convey("When using an unsupported method", func() {
			w := doRequest(mux, "PATCH", "/test_resource", `{}`)

			Convey("Then it should reject with the exact error body", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"unsupported method"}`)
			})
		})
	})
}
