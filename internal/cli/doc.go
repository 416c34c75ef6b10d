// Package cli разбирает аргументы командной строки, собирает конфигурацию
// проверки и переводит ее исход в код завершения процесса.
package cli
