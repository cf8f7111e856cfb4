// Package fuzztests holds Go fuzz harnesses for the front end
// (source -> lexer -> grammar -> parser). They look for panics and hangs on
// arbitrary input; syntax errors are expected and ignored.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
