package interact

import (
	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tradenet/internal/graph"
	"github.com/san-kum/tradenet/internal/layout"
	"github.com/san-kum/tradenet/internal/render"
)

func tradingGraph() *graph.Graph {
	g, _ := graph.Build([]string{"A", "B", "C"}, []graph.RawEdge{{From: "A", To: "B", Weight: 5}, {From: "B", To: "C", Weight: 2}}, nil)
	return g
}

func settle(s *Session) {
	for i := 0; s.Animating() && i < 2*layout.DefaultMaxTicks; i++ {
		s.Frame(s.Epoch())
	}
}

func midpoint(a, b render.Pixel) render.Pixel {
	return render.Pixel{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

var _ = Describe("Session", func() {
	var s *Session

	BeforeEach(func() {
		s = NewSession(layout.DefaultParams())
		s.Resize(400, 300)
	})

	AfterEach(func() {
		s.Close()
	})

	Context("with the initial empty graph", func() {
		It("starts at epoch 1 without animating", func() {
			Expect(s.Epoch()).To(Equal(Epoch(1)))
			Expect(s.Animating()).To(BeFalse())
			Expect(s.Frame(1)).To(BeTrue())
			Expect(s.Scene().Empty()).To(BeTrue())
		})
	})

	Context("when a graph is adopted", func() {
		var epoch Epoch

		BeforeEach(func() {
			epoch = s.Adopt(tradingGraph(), nil)
		})

		It("begins a new epoch", func() {
			Expect(epoch).To(Equal(Epoch(2)))
			Expect(s.Animating()).To(BeTrue())
		})

		It("steps the engine once per frame", func() {
			Expect(s.Frame(epoch)).To(BeTrue())
			Expect(s.Frame(epoch)).To(BeTrue())
			Expect(s.Engine().Tick()).To(Equal(2))
			Expect(s.Trace().Ticks()).To(Equal(2))
		})

		It("converges within the tick budget", func() {
			settle(s)
			Expect(s.Engine().Converged()).To(BeTrue())
			Expect(s.Engine().Tick()).To(BeNumerically("<=", layout.DefaultMaxTicks))
			Expect(s.Trace().Monotone()).To(BeTrue())
		})

		It("stops rendering once converged and nothing changes", func() {
			settle(s)
			before := s.Renders()
			for i := 0; i < 10; i++ {
				Expect(s.Frame(epoch)).To(BeTrue())
			}
			Expect(s.Renders()).To(Equal(before))

			s.SetTransform(s.Transform().ZoomBy(2))
			s.Frame(epoch)
			Expect(s.Renders()).To(Equal(before + 1))
		})

		It("ignores frames from a swapped-out graph", func() {
			s.Frame(epoch)
			old := s.Engine()

			next := s.Adopt(tradingGraph(), nil)
			Expect(next).To(Equal(epoch + 1))
			Expect(s.Engine()).NotTo(BeIdenticalTo(old))

			Expect(s.Frame(epoch)).To(BeFalse())
			Expect(old.Tick()).To(Equal(1))
			Expect(s.Engine().Tick()).To(Equal(0))
		})

		It("resumes animating after a recenter", func() {
			settle(s)
			s.Recenter()
			Expect(s.Animating()).To(BeTrue())
			settle(s)
			Expect(s.Engine().Converged()).To(BeTrue())
		})
	})

	Describe("pointer subscriptions", func() {
		var sub *Subscription

		BeforeEach(func() {
			s.Adopt(tradingGraph(), nil)
			settle(s)
			sub = s.Subscribe()
		})

		It("hovers a node under the pointer", func() {
			center := s.Scene().Nodes[0].Center
			Expect(sub.Move(center)).To(BeTrue())
			Expect(s.Hover().Kind).To(Equal(HoverNode))
			Expect(s.Hover().ID).To(Equal("A"))

			tip, ok := s.Tooltip()
			Expect(ok).To(BeTrue())
			Expect(tip.Kind).To(Equal("node"))
			Expect(*tip.Sold).To(Equal(5.0))
			Expect(*tip.Bought).To(Equal(0.0))
		})

		It("hovers an edge between its endpoints", func() {
			nodes := s.Scene().Nodes
			Expect(sub.Move(midpoint(nodes[0].Center, nodes[1].Center))).To(BeTrue())
			Expect(s.Hover().Kind).To(Equal(HoverEdge))

			tip, _ := s.Tooltip()
			data, err := tip.JSON()
			Expect(err).NotTo(HaveOccurred())

			var payload map[string]any
			Expect(json.Unmarshal(data, &payload)).To(Succeed())
			Expect(payload).To(HaveKeyWithValue("kind", "edge"))
			Expect(payload).To(HaveKeyWithValue("source", "A"))
			Expect(payload).To(HaveKeyWithValue("target", "B"))
			Expect(payload).To(HaveKeyWithValue("weight", 5.0))
		})

		It("re-renders once per hover change", func() {
			before := s.Renders()
			center := s.Scene().Nodes[1].Center
			sub.Move(center)
			Expect(sub.Move(center)).To(BeFalse())
			s.Frame(s.Epoch())
			Expect(s.Renders()).To(Equal(before + 1))
			Expect(s.Scene().Nodes[1].Highlight).To(BeTrue())

			Expect(sub.Leave()).To(BeTrue())
			Expect(s.Hover().None()).To(BeTrue())
		})

		It("is released when the graph is swapped", func() {
			sub.Move(s.Scene().Nodes[0].Center)
			s.Adopt(tradingGraph(), nil)

			Expect(sub.Active()).To(BeFalse())
			Expect(s.Subscriptions()).To(Equal(0))
			Expect(s.Hover().None()).To(BeTrue())
			Expect(sub.Move(render.Pixel{X: 200, Y: 150})).To(BeFalse())
		})

		It("can be released explicitly", func() {
			sub.Release()
			sub.Release()
			Expect(sub.Active()).To(BeFalse())
			Expect(s.Subscriptions()).To(Equal(0))
		})
	})

	Describe("teardown", func() {
		It("ignores everything after Close", func() {
			epoch := s.Adopt(tradingGraph(), nil)
			sub := s.Subscribe()
			s.Close()

			Expect(s.Closed()).To(BeTrue())
			Expect(s.Frame(epoch)).To(BeFalse())
			Expect(s.Animating()).To(BeFalse())
			Expect(sub.Active()).To(BeFalse())
			Expect(s.Subscribe()).To(BeNil())
			Expect(s.Adopt(tradingGraph(), nil)).To(Equal(Epoch(0)))
		})
	})
})
