/*
Package logging configures the process-wide slog logger.

Level and format come from --log-level and --log-format (LOG_LEVEL,
LOG_FORMAT):

	logger, err := logging.Setup("info", "auto")

Format "auto" writes text when stderr is a terminal and JSON otherwise,
so interactive runs stay readable and piped output stays machine-parsable.
*/
package logging
