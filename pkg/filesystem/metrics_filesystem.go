package filesystem

import (
	"time"

	"github.com/naruse/NiceIO/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	filesystemOperationsStartedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "niceio",
			Subsystem: "filesystem",
			Name:      "operations_started_total",
			Help:      "Total number of operations started on file system objects.",
		},
		[]string{"name", "operation"})
	filesystemOperationsDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "niceio",
			Subsystem: "filesystem",
			Name:      "operations_duration_seconds",
			Help:      "Amount of time spent per operation on file system objects, in seconds.",
			Buckets:   util.DecimalExponentialBuckets(-3, 6, 2),
		},
		[]string{"name", "operation"})
)

func init() {
	prometheus.MustRegister(filesystemOperationsStartedTotal)
	prometheus.MustRegister(filesystemOperationsDurationSeconds)
}

type metricsOperation struct {
	started  prometheus.Counter
	duration prometheus.Observer
}

func newMetricsOperation(name, operation string) metricsOperation {
	return metricsOperation{
		started:  filesystemOperationsStartedTotal.WithLabelValues(name, operation),
		duration: filesystemOperationsDurationSeconds.WithLabelValues(name, operation),
	}
}

func (o *metricsOperation) observe(timeStart time.Time) {
	o.duration.Observe(time.Now().Sub(timeStart).Seconds())
}

type metricsFilesystem struct {
	fs Filesystem

	exists             metricsOperation
	isFile             metricsOperation
	isDir              metricsOperation
	createDir          metricsOperation
	removeFile         metricsOperation
	removeDirRecursive metricsOperation
	listFiles          metricsOperation
	listDirs           metricsOperation
	copyFile           metricsOperation
	writeBytes         metricsOperation
}

// NewMetricsFilesystem creates an adapter for Filesystem that adds
// basic instrumentation in the form of Prometheus metrics.
func NewMetricsFilesystem(fs Filesystem, name string) Filesystem {
	return &metricsFilesystem{
		fs: fs,

		exists:             newMetricsOperation(name, "Exists"),
		isFile:             newMetricsOperation(name, "IsFile"),
		isDir:              newMetricsOperation(name, "IsDir"),
		createDir:          newMetricsOperation(name, "CreateDir"),
		removeFile:         newMetricsOperation(name, "RemoveFile"),
		removeDirRecursive: newMetricsOperation(name, "RemoveDirRecursive"),
		listFiles:          newMetricsOperation(name, "ListFiles"),
		listDirs:           newMetricsOperation(name, "ListDirs"),
		copyFile:           newMetricsOperation(name, "CopyFile"),
		writeBytes:         newMetricsOperation(name, "WriteBytes"),
	}
}

func (fs *metricsFilesystem) Exists(path string) bool {
	fs.exists.started.Inc()
	timeStart := time.Now()
	defer fs.exists.observe(timeStart)
	return fs.fs.Exists(path)
}

func (fs *metricsFilesystem) IsFile(path string) bool {
	fs.isFile.started.Inc()
	timeStart := time.Now()
	defer fs.isFile.observe(timeStart)
	return fs.fs.IsFile(path)
}

func (fs *metricsFilesystem) IsDir(path string) bool {
	fs.isDir.started.Inc()
	timeStart := time.Now()
	defer fs.isDir.observe(timeStart)
	return fs.fs.IsDir(path)
}

func (fs *metricsFilesystem) CreateDir(path string) error {
	fs.createDir.started.Inc()
	timeStart := time.Now()
	defer fs.createDir.observe(timeStart)
	return fs.fs.CreateDir(path)
}

func (fs *metricsFilesystem) RemoveFile(path string) error {
	fs.removeFile.started.Inc()
	timeStart := time.Now()
	defer fs.removeFile.observe(timeStart)
	return fs.fs.RemoveFile(path)
}

func (fs *metricsFilesystem) RemoveDirRecursive(path string) error {
	fs.removeDirRecursive.started.Inc()
	timeStart := time.Now()
	defer fs.removeDirRecursive.observe(timeStart)
	return fs.fs.RemoveDirRecursive(path)
}

func (fs *metricsFilesystem) ListFiles(path string, recursive bool) ([]string, error) {
	fs.listFiles.started.Inc()
	timeStart := time.Now()
	defer fs.listFiles.observe(timeStart)
	return fs.fs.ListFiles(path, recursive)
}

func (fs *metricsFilesystem) ListDirs(path string, recursive bool) ([]string, error) {
	fs.listDirs.started.Inc()
	timeStart := time.Now()
	defer fs.listDirs.observe(timeStart)
	return fs.fs.ListDirs(path, recursive)
}

func (fs *metricsFilesystem) CopyFile(src, dst string, overwrite bool) error {
	fs.copyFile.started.Inc()
	timeStart := time.Now()
	defer fs.copyFile.observe(timeStart)
	return fs.fs.CopyFile(src, dst, overwrite)
}

func (fs *metricsFilesystem) WriteBytes(path string, data []byte) error {
	fs.writeBytes.started.Inc()
	timeStart := time.Now()
	defer fs.writeBytes.observe(timeStart)
	return fs.fs.WriteBytes(path, data)
}
