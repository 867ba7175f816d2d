package login

// Recorder is a View that keeps every side effect for later rendering.
type Recorder struct {
	Errors     map[string]string
	Loading    bool
	LoadingLog []string
	AlertTitle string
	Alerted    bool
	Route      string
	SessionID  string
}

func (r *Recorder) FieldErrors(errs map[string]string) { r.Errors = errs }

func (r *Recorder) ShowLoading(title, text string) {
	r.Loading = true
	r.LoadingLog = append(r.LoadingLog, title+": "+text)
}

func (r *Recorder) HideLoading() { r.Loading = false }

func (r *Recorder) Alert(title string) {
	r.AlertTitle = title
	r.Alerted = true
}

func (r *Recorder) Rebind(sid string) { r.SessionID = sid }

func (r *Recorder) Navigate(route string) { r.Route = route }
