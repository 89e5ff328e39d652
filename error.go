package msgcode

// Error is an error whose text comes from a catalog message.
type Error interface {
	Error() string
	Unwrap() error
	Code() string
	Level() Level
	Message() *Message
}

type DefaultError struct {
	err     error
	message *Message
	text    string
}

func (ce DefaultError) Error() string {
	return ce.text
}

func (ce *DefaultError) Unwrap() error {
	return ce.err
}

func (ce *DefaultError) Code() string {
	return ce.message.Code()
}

func (ce *DefaultError) Level() Level {
	return ce.message.Level()
}

func (ce *DefaultError) Message() *Message {
	return ce.message
}

// NewError looks code up in c (the global catalog when c is nil) and returns
// an error carrying the expanded text. A missing code yields a
// *MissingCodeError instead.
func NewError(c Catalog, code string, binds ...interface{}) error {
	return WrapError(c, nil, code, binds...)
}

// WrapError is NewError with an underlying cause exposed through Unwrap.
func WrapError(c Catalog, err error, code string, binds ...interface{}) error {
	if c == nil {
		c = Global()
	}
	message, found := c.Get(code)
	if !found {
		return &MissingCodeError{Code: code, Err: err}
	}
	return &DefaultError{err: err, message: message, text: message.Expand(binds...)}
}
