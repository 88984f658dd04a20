package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	repository "github.com/restpad/restpad/internal/adapters/repository"
	"github.com/restpad/restpad/internal/domain/resource"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemStoreGet(t *testing.T) {
	Convey("Given a fresh store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When reading the resource", func() {
			r := store.Get(ctx)

			Convey("Then it should be the default resource", func() {
				So(r, ShouldResemble, resource.Default())
			})

			Convey("And the version should be zero", func() {
				So(store.Version(ctx), ShouldEqual, 0)
				So(store.LastMerged(ctx).IsZero(), ShouldBeTrue)
			})
		})
	})

	Convey("Given a store seeded via WithInitial", t, func() {
		ctx := context.Background()
		seed := resource.Resource{Name: "seeded", Location: "elsewhere", Endpoints: 9, HasValues: false}
		store := repository.NewMemStore(repository.WithInitial(seed))

		Convey("Then Get should return the seed", func() {
			So(store.Get(ctx), ShouldResemble, seed)
		})
	})
}

func TestMemStoreMerge(t *testing.T) {
	Convey("Given a fresh store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When merging a valid patch", func() {
			p, err := resource.ParsePatch([]byte(`{"name":"patched"}`))
			So(err, ShouldBeNil)
			updated, err := store.Merge(ctx, p)

			Convey("Then the update should apply and bump the version", func() {
				So(err, ShouldBeNil)
				So(updated.Name, ShouldEqual, "patched")
				So(store.Get(ctx).Name, ShouldEqual, "patched")
				So(store.Version(ctx), ShouldEqual, 1)
				So(store.LastMerged(ctx).IsZero(), ShouldBeFalse)
			})
		})

		Convey("When merging a patch with an unknown field", func() {
			p, err := resource.ParsePatch([]byte(`{"name":"patched","bogus":1}`))
			So(err, ShouldBeNil)
			_, err = store.Merge(ctx, p)

			Convey("Then nothing should persist, not even the known field", func() {
				So(errors.Is(err, resource.ErrUnknownField), ShouldBeTrue)
				So(store.Get(ctx), ShouldResemble, resource.Default())
				So(store.Version(ctx), ShouldEqual, 0)
			})
		})
	})
}

func TestMemStoreConcurrentAccess(t *testing.T) {
	Convey("Given concurrent readers and writers", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		const iterations = 200
		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				p, _ := resource.ParsePatch([]byte(`{"endpoints":5}`))
				_, _ = store.Merge(ctx, p)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				r := store.Get(ctx)
				// Readers always observe a complete record.
				if r.Name == "" {
					t.Error("observed partial resource state")
					return
				}
			}
		}()
		wg.Wait()

		Convey("Then the final state should reflect every merge", func() {
			So(store.Version(ctx), ShouldEqual, iterations)
			So(store.Get(ctx).Endpoints, ShouldEqual, 5)
		})
	})
}
