package scraper

type Worker interface {
	StartWork()
	Result() interface{}
	Progress() float64
	Done() bool
	Error() error
}

// WorkerFactory creates import jobs for the API.
type WorkerFactory interface {
	CreateWorker(username string, max int) Worker
}
