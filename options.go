package richgui

// Option configures a widget call such as TextEdit.
type Option func(*options)

// options holds all widget configuration via the extensions map.
// All options use the unified OptKey system for type safety.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for widget options.
// All options (built-in and custom) use this system for consistency.
//
// Example:
//
//	// Define option keys (built-in ones are already defined below)
//	var OptCustomThing = richgui.NewOptKey("customThing", defaultValue)
//
//	// Set options
//	ctx.MyWidget("id", richgui.WithOpt(OptCustomThing, value))
//
//	// Read in widget implementation
//	value := richgui.GetOpt(opts, OptCustomThing)
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value with type safety.
// Returns the key's default value if not set.
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	if o.extensions == nil {
		return false
	}
	_, ok := o.extensions[key.name]
	return ok
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ApplyAndGet applies options and returns a single value.
// Use this in external packages to create custom widgets.
func ApplyAndGet[T any](opts []Option, key OptKey[T]) T {
	return GetOpt(applyOptions(opts), key)
}

// ApplyAndCheck returns the option value and whether it was explicitly set.
func ApplyAndCheck[T any](opts []Option, key OptKey[T]) (T, bool) {
	o := applyOptions(opts)
	return GetOpt(o, key), HasOpt(o, key)
}

// =============================================================================
// Built-in Option Keys
// =============================================================================

var (
	// OptReadOnly disables every mutating edit command. Navigation, selection and copy still work.
	OptReadOnly = NewOptKey("readOnly", false)
	// OptSingleLine collapses line breaks after every edit and ignores Enter.
	OptSingleLine = NewOptKey("singleLine", false)
	// OptDisabled ignores all input and draws without a caret.
	OptDisabled = NewOptKey("disabled", false)
	// OptPlaceholder is drawn in the muted text color while the buffer is empty.
	OptPlaceholder = NewOptKey("placeholder", "")
)

var (
	// OptEntityMeasure sizes entity characters.
	OptEntityMeasure = NewOptKey[EntityMeasureFunc]("entityMeasure", nil)
	// OptEntityDraw draws entity characters.
	OptEntityDraw = NewOptKey[EntityDrawFunc]("entityDraw", nil)
)

var (
	// OptNoContextMenu suppresses the editor's Cut/Copy/Paste context menu contribution.
	OptNoContextMenu = NewOptKey("noContextMenu", false)
)

// ReadOnly makes a TextEdit non-editable.
func ReadOnly() Option { return WithOpt(OptReadOnly, true) }

// SingleLine makes a TextEdit hold exactly one line.
func SingleLine() Option { return WithOpt(OptSingleLine, true) }

// WithDisabled sets the disabled state.
func WithDisabled(disabled bool) Option { return WithOpt(OptDisabled, disabled) }

// WithPlaceholder sets the empty-buffer hint text.
func WithPlaceholder(text string) Option { return WithOpt(OptPlaceholder, text) }

// WithEntities installs the entity measure and draw callbacks.
func WithEntities(measure EntityMeasureFunc, draw EntityDrawFunc) Option {
	return func(o *options) {
		WithOpt(OptEntityMeasure, measure)(o)
		WithOpt(OptEntityDraw, draw)(o)
	}
}

// NoContextMenu disables the built-in context menu.
func NoContextMenu() Option { return WithOpt(OptNoContextMenu, true) }
