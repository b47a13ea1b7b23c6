package pager

// Control — имя одного навигационного действия.
type Control string

const (
	ControlFirst Control = "first"
	ControlBack  Control = "back"
	ControlNext  Control = "next"
	ControlLast  Control = "last"
	ControlStop  Control = "stop"
	ControlJump  Control = "jump"
)

// ParseControl разбирает callback-данные кнопки в имя контрола.
func ParseControl(s string) (Control, bool) {
	switch c := Control(s); c {
	case ControlFirst, ControlBack, ControlNext, ControlLast, ControlStop, ControlJump:
		return c, true
	}
	return "", false
}

// Labels задает подписи кнопок навигации.
type Labels struct {
	First string `yaml:"first"`
	Back  string `yaml:"back"`
	Next  string `yaml:"next"`
	Last  string `yaml:"last"`
	Stop  string `yaml:"stop"`
	Jump  string `yaml:"jump"`
}

// DefaultLabels возвращает стандартные подписи кнопок.
func DefaultLabels() Labels {
	return Labels{
		First: "⏮",
		Back:  "◀",
		Next:  "▶",
		Last:  "⏭",
		Stop:  "✖",
		Jump:  "🔢",
	}
}

// ControlSet описывает, какие контролы активны. Набор не хранится в
// сессии, а вычисляется заново при каждой перерисовке.
type ControlSet struct {
	First bool
	Back  bool
	Next  bool
	Last  bool
	Stop  bool
	Jump  bool
}

// AllControls — полный набор включенных контролов.
func AllControls() ControlSet {
	return ControlSet{First: true, Back: true, Next: true, Last: true, Stop: true, Jump: true}
}

// ComputeControls вычисляет активные контролы для позиции index из count.
// На первой странице не показываются first/back, на последней — next/last;
// stop доступен всегда, пока сессия интерактивна; jump не зависит от
// позиции. Терминальная перерисовка использует нулевой ControlSet.
func ComputeControls(index, count int, enabled ControlSet) ControlSet {
	return ControlSet{
		First: enabled.First && index != 1,
		Back:  enabled.Back && index != 1,
		Next:  enabled.Next && index != count,
		Last:  enabled.Last && index != count,
		Stop:  enabled.Stop,
		Jump:  enabled.Jump,
	}
}

// Buttons строит ряд кнопок для набора контролов в фиксированном порядке.
// Для полностью выключенного набора возвращается nil: клавиатура убирается.
func (cs ControlSet) Buttons(labels Labels) []Button {
	var row []Button
	if cs.First {
		row = append(row, Button{Label: labels.First, Data: string(ControlFirst)})
	}
	if cs.Back {
		row = append(row, Button{Label: labels.Back, Data: string(ControlBack)})
	}
	if cs.Jump {
		row = append(row, Button{Label: labels.Jump, Data: string(ControlJump)})
	}
	if cs.Next {
		row = append(row, Button{Label: labels.Next, Data: string(ControlNext)})
	}
	if cs.Last {
		row = append(row, Button{Label: labels.Last, Data: string(ControlLast)})
	}
	if cs.Stop {
		row = append(row, Button{Label: labels.Stop, Data: string(ControlStop)})
	}
	return row
}
