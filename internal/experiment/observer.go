package experiment

// Observer receives progress while an experiment runs. Callbacks run on the
// experiment's goroutine; suites with several workers call them concurrently
// for different experiments.
type Observer interface {
	OnStart(cfg Config)
	OnEpoch(cfg Config, e Epoch)
	OnFinish(res *Result)
}

type nopObserver struct{}

func (nopObserver) OnStart(Config)        {}
func (nopObserver) OnEpoch(Config, Epoch) {}
func (nopObserver) OnFinish(*Result)      {}

// ObserverFuncs adapts optional functions to Observer.
type ObserverFuncs struct {
	Start  func(cfg Config)
	Epoch  func(cfg Config, e Epoch)
	Finish func(res *Result)
}

// OnStart implements Observer.
func (o ObserverFuncs) OnStart(cfg Config) {
	if o.Start != nil {
		o.Start(cfg)
	}
}

// OnEpoch implements Observer.
func (o ObserverFuncs) OnEpoch(cfg Config, e Epoch) {
	if o.Epoch != nil {
		o.Epoch(cfg, e)
	}
}

// OnFinish implements Observer.
func (o ObserverFuncs) OnFinish(res *Result) {
	if o.Finish != nil {
		o.Finish(res)
	}
}

// multiObserver fans callbacks out in order.
type multiObserver []Observer

func (m multiObserver) OnStart(cfg Config) {
	for _, o := range m {
		o.OnStart(cfg)
	}
}

func (m multiObserver) OnEpoch(cfg Config, e Epoch) {
	for _, o := range m {
		o.OnEpoch(cfg, e)
	}
}

func (m multiObserver) OnFinish(res *Result) {
	for _, o := range m {
		o.OnFinish(res)
	}
}

// Observers combines observers, skipping nils.
func Observers(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	if len(m) == 0 {
		return nopObserver{}
	}
	return m
}
