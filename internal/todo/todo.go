package todo

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AnatoleLucet/observable"
	"github.com/google/uuid"
)

// Mode is the unit the minimum todo length is counted in.
type Mode string

const (
	Letters Mode = "letters"
	Words   Mode = "words"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Letters, Words:
		return m, nil
	default:
		return "", fmt.Errorf("todo: unknown length mode %q", s)
	}
}

// Length counts text in the given mode.
func (m Mode) Length(text string) int {
	if m == Words {
		return len(strings.Fields(text))
	}
	return utf8.RuneCountInString(text)
}

// Todo is a single entry. Its validity follows the controller's minimum length settings.
type Todo struct {
	id uuid.UUID

	text  *observable.Observable[string]
	done  *observable.Observable[bool]
	valid *observable.Computed[bool]
}

func newTodo(minLength *observable.Observable[int], mode *observable.Observable[Mode]) *Todo {
	text := observable.New("text")

	return &Todo{
		id:   uuid.New(),
		text: text,
		done: observable.New(false),
		valid: observable.Combine3(text, minLength, mode, func(text string, minLength int, mode Mode) bool {
			return mode.Length(text) >= minLength
		}),
	}
}

func (t *Todo) ID() string { return t.id.String() }

func (t *Todo) Text() string { return t.text.Get() }
func (t *Todo) SetText(text string) { t.text.Set(text) }
func (t *Todo) OnTextChanged(fn func(old, new string)) observable.Handle { return t.text.OnChange(fn) }

func (t *Todo) Done() bool { return t.done.Get() }
func (t *Todo) SetDone(done bool) { t.done.Set(done) }
func (t *Todo) OnDoneChanged(fn func(old, new bool)) observable.Handle { return t.done.OnChange(fn) }

func (t *Todo) Valid() bool { return t.valid.Get() }
func (t *Todo) OnValidChanged(fn func(old, new bool)) observable.Handle { return t.valid.OnChange(fn) }

func (t *Todo) RemoveTextListener(h observable.Handle) { t.text.Unsubscribe(h) }
func (t *Todo) RemoveDoneListener(h observable.Handle) { t.done.Unsubscribe(h) }
func (t *Todo) RemoveValidListener(h observable.Handle) { t.valid.Unsubscribe(h) }

// release detaches the todo from the shared length settings.
func (t *Todo) release() {
	t.valid.Dispose()
}
