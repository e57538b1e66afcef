package translate

import (
	"golang.org/x/text/language"
)

// catalog holds translations keyed by the en-US format string.
var catalog = map[language.Tag]map[string]string{
	language.Russian: {
		// cpu
		"unknown opcode %v at pc %v":                    "неизвестный opcode %v на позиции %v",
		"truncated %v at pc %v":                         "недостаточно байт для команды %v на позиции %v",
		"invalid memory address %v (memory size %v)":    "недопустимый адрес памяти: %v (размер памяти %v)",
		"pc %v outside program of %v bytes":             "позиция %v вне программы размером %v байт",
		"undefined opcode %v":                           "неопределённый opcode %v",
		"pc %v: %v":                                     "PC=%v: %v",
		"machine halted":                                "машина остановлена",
		"machine faulted":                               "машина в состоянии ошибки",
		"machine has not halted":                        "выполнение программы не завершено",
		"memory range %v:%v invalid for memory size %v": "некорректный диапазон памяти %v:%v для памяти размером %v",

		// assembler
		"line %d '%v' %v":                  "строка %d '%v' %v",
		"unknown mnemonic '%v'":            "неизвестный мнемоник '%v'",
		"%v requires %v operands, got %v":  "%v требует %v операнда, получено %v",
		"'%v' is not a number":             "'%v' не является числом",
		"operand '%v' out of range 0..255": "операнд '%v' вне диапазона 0..255",
		"$(%v) is not a valid expression":  "$(%v) не является допустимым выражением",
		".equ syntax":                      "синтаксис .equ",
		".equ duplicated":                  ".equ повторно определён",

		// emulator
		"memory range must be start:end, got '%v'": "диапазон памяти должен быть в формате start:end, получено '%v'",
		"pc %v line %d %v":                         "PC=%v строка %d %v",
		"pc %v %v":                                 "PC=%v %v",
		"memory size %v invalid":                   "некорректный размер памяти %v",
		"listing does not match program binary":    "листинг не соответствует бинарному файлу программы",

		// artifact
		"log must be a JSON object":              "лог должен быть JSON-объектом",
		"log key '%v' is not instruction_<line>": "ключ лога '%v' не имеет вида instruction_<строка>",
		"log entry %v: %v":                       "запись лога %v: %v",

		// commands
		"unknown arguments: %v": "неизвестные аргументы: %v",
		"flag -%v is required":  "требуется флаг -%v",
	},
}
