package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glquad_frames_rendered_total",
		Help: "Total number of frames presented by the render loop",
	})
	DrawCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glquad_draw_calls_total",
		Help: "Total number of indexed draw calls issued",
	})
	GLErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glquad_gl_errors_total",
		Help: "Total number of errors reported by the checked call boundary",
	}, []string{"code"})
	BytesUploaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glquad_buffer_bytes_uploaded_total",
		Help: "Total number of bytes uploaded into GPU buffers",
	}, []string{"target"})
	LiveObjects = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "glquad_gl_objects",
		Help: "Number of GL objects currently owned by glquad",
	}, []string{"kind"})
	ShaderReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glquad_shader_reloads_total",
		Help: "Total number of shader program rebuilds triggered by file changes",
	}, []string{"result"})
)

// ObjectMetrics tracks creation and deletion of one kind of GL object.
type ObjectMetrics struct {
	Live prometheus.Gauge
}

func NewObjectMetrics(kind string) ObjectMetrics {
	o := ObjectMetrics{
		Live: LiveObjects.WithLabelValues(kind),
	}
	o.Live.Add(0)
	return o
}

func (o ObjectMetrics) Created() {
	o.Live.Inc()
}

func (o ObjectMetrics) Deleted() {
	o.Live.Dec()
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
