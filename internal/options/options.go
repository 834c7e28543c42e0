// Package options implements functional options shared by the encoders,
// readers, listing writer and processor.
package options

// Option configures a target of type T, typically a pointer to a config
// struct or to the component itself.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to an Option.
type Func[T any] func(T) error

func (f Func[T]) apply(target T) error {
	return f(target)
}

// New returns an Option that runs fn and reports its error.
func New[T any](fn func(T) error) Func[T] {
	return Func[T](fn)
}

// NoError returns an Option for a setter that cannot fail.
func NoError[T any](fn func(T)) Func[T] {
	return func(target T) error {
		fn(target)
		return nil
	}
}

// Apply runs opts against target in order and stops at the first error.
// Nil options are ignored.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
