// Package logtail reads the end of repolist's log file.
//
// Read uses a ring buffer, so memory is proportional to the number of lines
// requested rather than the file size. ReadLevel additionally filters slog
// text records by level, which backs `repolist logs --level warn`:
//
//	lines, err := logtail.ReadLevel(cfg.LogFile, 50, slog.LevelWarn)
//	if err != nil {
//		return err
//	}
//	for _, line := range lines {
//		fmt.Println(line)
//	}
//
// A missing log file is not an error; it simply has no lines yet.
package logtail
