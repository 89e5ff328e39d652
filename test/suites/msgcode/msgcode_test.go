package test_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golang/mock/gomock"
	"github.com/loopcontext/msgcode"
	mock_msgcode "github.com/loopcontext/msgcode/internal/mock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Message Catalog", func() {
	var (
		ctrl    *gomock.Controller
		loader  *mock_msgcode.MockLoader
		catalog *msgcode.DefaultCatalog
		ctx     context.Context
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		loader = mock_msgcode.NewMockLoader(ctrl)
		catalog = msgcode.New(msgcode.Config{})
		ctx = context.Background()
	})

	AfterEach(func() {
		catalog.Close()
		ctrl.Finish()
	})

	Context("loading resources", func() {
		BeforeEach(func() {
			loader.EXPECT().Load(gomock.Any(), "base.properties").Return([]msgcode.Entry{
				{DefinitionCode: "A-E", Template: "A"},
				{DefinitionCode: "B-E", Template: "B"},
			}, nil)
			Expect(catalog.Load(ctx, loader, "base.properties", msgcode.ReplaceAll)).To(Succeed())
			loader.EXPECT().Load(gomock.Any(), "update.properties").Return([]msgcode.Entry{
				{DefinitionCode: "B-W", Template: "B'"},
				{DefinitionCode: "C-I", Template: "C'"},
			}, nil)
		})

		It("should replace everything with replace-all", func() {
			Expect(catalog.Load(ctx, loader, "update.properties", msgcode.ReplaceAll)).To(Succeed())
			Expect(catalog.Keys()).To(Equal([]string{"B", "C"}))
		})

		It("should overwrite existing codes with replace-exists", func() {
			Expect(catalog.Load(ctx, loader, "update.properties", msgcode.ReplaceExists)).To(Succeed())
			Expect(catalog.Keys()).To(Equal([]string{"A", "B", "C"}))
			b, found := catalog.Get("B")
			Expect(found).To(BeTrue())
			Expect(b.Template()).To(Equal("B'"))
			Expect(b.Level()).To(Equal(msgcode.LevelWarning))
		})

		It("should keep existing codes with skip-exists", func() {
			Expect(catalog.Load(ctx, loader, "update.properties", msgcode.SkipExists)).To(Succeed())
			Expect(catalog.Keys()).To(Equal([]string{"A", "B", "C"}))
			b, _ := catalog.Get("B")
			Expect(b.Template()).To(Equal("B"))
			Expect(b.Level()).To(Equal(msgcode.LevelError))
		})
	})

	It("should leave the catalog intact when the loader fails", func() {
		Expect(catalog.Add("KEEP-I", "kept", false)).To(Succeed())
		before := catalog.Keys()

		cause := errors.New("permission denied")
		loader.EXPECT().Load(gomock.Any(), "locked.xml").Return(nil, cause)

		err := catalog.Load(ctx, loader, "locked.xml", msgcode.ReplaceAll)
		Expect(errors.Is(err, msgcode.ErrLoad)).To(BeTrue())
		Expect(errors.Is(err, cause)).To(BeTrue())
		Expect(catalog.Keys()).To(Equal(before))
	})

	It("should treat a missing resource as empty", func() {
		loader.EXPECT().Load(gomock.Any(), "absent.xml").Return(nil, msgcode.ErrResourceNotFound)
		Expect(catalog.Load(ctx, loader, "absent.xml", msgcode.SkipExists)).To(Succeed())
		Expect(catalog.Len()).To(BeZero())
	})

	It("should reject a duplicate strict add and keep the original", func() {
		Expect(catalog.Add("X-E", "original", false)).To(Succeed())
		err := catalog.Add("X-I", "replacement", false)
		Expect(errors.Is(err, msgcode.ErrAlreadyExists)).To(BeTrue())

		x, found := catalog.Get("X")
		Expect(found).To(BeTrue())
		Expect(x.Template()).To(Equal("original"))
	})

	It("should expand templates looked up by definition code", func() {
		Expect(catalog.Add("GREET-I", "Hello {0}, {1}", false)).To(Succeed())
		m, found := catalog.Get("GREET-E")
		Expect(found).To(BeTrue())
		Expect(m.Expand("Ada", "welcome")).To(Equal("Hello Ada, welcome"))
		Expect(m.Expand("Ada")).To(Equal("Hello Ada, {1}"))
	})

	Context("with the global catalog", func() {
		BeforeEach(func() {
			Expect(msgcode.Global().Add("SUITE_GLOBAL-W", "global text", true)).To(Succeed())
		})

		AfterEach(func() {
			msgcode.Global().Remove("SUITE_GLOBAL")
		})

		It("should fall back to the global catalog when inheriting", func() {
			scoped := msgcode.New(msgcode.Config{InheritGlobal: true})
			m, found := scoped.Get("SUITE_GLOBAL")
			Expect(found).To(BeTrue())
			Expect(m.Template()).To(Equal("global text"))
			Expect(scoped.Keys()).To(BeEmpty())
		})

		It("should not see the global catalog when not inheriting", func() {
			scoped := msgcode.New(msgcode.Config{InheritGlobal: false})
			_, found := scoped.Get("SUITE_GLOBAL")
			Expect(found).To(BeFalse())
		})

		It("should build coded errors from the global catalog", func() {
			err := msgcode.NewError(nil, "SUITE_GLOBAL-W")
			Expect(err).To(MatchError("global text"))
			Expect(errors.Is(msgcode.NewError(nil, "SUITE_MISSING"), msgcode.ErrMissingCode)).To(BeTrue())
		})
	})

	It("should notify the observer about loads and misses", func() {
		observer := mock_msgcode.NewMockObserver(ctrl)
		var wg sync.WaitGroup
		wg.Add(2)
		observer.EXPECT().OnLoaded("obs.yaml", 1).Do(func(string, int) { wg.Done() })
		observer.EXPECT().OnMessageMissing("NOPE").Do(func(string) { wg.Done() })

		observed := msgcode.New(msgcode.Config{Observer: observer})
		defer observed.Close()

		loader.EXPECT().Load(gomock.Any(), "obs.yaml").Return([]msgcode.Entry{{DefinitionCode: "OBS-D", Template: "x"}}, nil)
		Expect(observed.Load(ctx, loader, "obs.yaml", msgcode.ReplaceAll)).To(Succeed())
		_, found := observed.Get("NOPE")
		Expect(found).To(BeFalse())
		wg.Wait()
	})

	It("should load several resources concurrently and atomically", func() {
		for i := 0; i < 5; i++ {
			locator := fmt.Sprintf("part-%d.toml", i)
			loader.EXPECT().Load(gomock.Any(), locator).Return([]msgcode.Entry{
				{DefinitionCode: fmt.Sprintf("P%d-I", i), Template: locator},
			}, nil)
		}
		locators := []string{"part-0.toml", "part-1.toml", "part-2.toml", "part-3.toml", "part-4.toml"}
		Expect(catalog.LoadAll(ctx, loader, locators, msgcode.ReplaceAll)).To(Succeed())
		Expect(catalog.Keys()).To(Equal([]string{"P0", "P1", "P2", "P3", "P4"}))
	})

	It("should be safe under concurrent reads and writes", func() {
		Expect(catalog.Add("STABLE-I", "stable", false)).To(Succeed())

		const (
			readers       = 12
			readerIters   = 200
			writerEntries = 20
		)

		errCh := make(chan error, readers+writerEntries)
		var wg sync.WaitGroup

		for i := 0; i < readers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < readerIters; j++ {
					if _, found := catalog.Get("STABLE"); !found {
						errCh <- fmt.Errorf("stable message disappeared")
						return
					}
				}
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < writerEntries; i++ {
				if err := catalog.Add(fmt.Sprintf("W%d-D", i), "w", false); err != nil {
					errCh <- err
					return
				}
			}
		}()

		wg.Wait()
		close(errCh)

		for err := range errCh {
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(catalog.Len()).To(Equal(writerEntries + 1))
	})
})
