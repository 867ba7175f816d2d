package model

// GeneralResponse is the envelope every remote API call resolves to.
// When HasError is set the payload is undefined; read it through Payload.
type GeneralResponse[T any] struct {
	HasError         bool   `json:"hasError"`
	MessageError     string `json:"messageError"`
	MessageException string `json:"messageException,omitempty"`
	Data             *T     `json:"data"`
}

// Payload returns the data carried by the envelope and whether it may be used.
// It reports false for error envelopes no matter what Data holds.
func (r *GeneralResponse[T]) Payload() (T, bool) {
	var zero T
	if r == nil || r.HasError || r.Data == nil {
		return zero, false
	}
	return *r.Data, true
}

// Succeeded reports whether the envelope is a success carrying a true boolean payload.
// Used for the create/update/delete operations whose payload is a success flag.
func Succeeded(r *GeneralResponse[bool]) bool {
	ok, present := r.Payload()
	return present && ok
}

// Public returns the envelope as a browser may see it: the diagnostic in
// MessageException is dropped and error envelopes carry no payload.
func (r *GeneralResponse[T]) Public() *GeneralResponse[T] {
	if r == nil {
		return nil
	}
	out := &GeneralResponse[T]{HasError: r.HasError, MessageError: r.MessageError}
	if !r.HasError {
		out.Data = r.Data
	}
	return out
}
