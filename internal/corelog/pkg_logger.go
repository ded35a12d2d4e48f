package corelog

import "fmt"

// packageLogger gates every call behind its configured level before
// handing the formatted message to the shared formatter; this module
// never calls Panic/Fatal variants, so only the leveled Printf-style
// methods are kept.
type packageLogger struct {
	pkg   string
	level LogLevel
}

func (p *packageLogger) log(level LogLevel, format string, args ...interface{}) {
	if p.level < level {
		return
	}
	logger.lock.Lock()
	f := logger.formatter
	logger.lock.Unlock()
	if f == nil {
		return
	}
	f.Format(p.pkg, level, fmt.Sprintf(format, args...))
}

func (p *packageLogger) Errorf(format string, args ...interface{}) {
	p.log(ERROR, format, args...)
}

func (p *packageLogger) Warningf(format string, args ...interface{}) {
	p.log(WARNING, format, args...)
}

func (p *packageLogger) Infof(format string, args ...interface{}) {
	p.log(INFO, format, args...)
}

func (p *packageLogger) Debugf(format string, args ...interface{}) {
	p.log(DEBUG, format, args...)
}

func (p *packageLogger) Verbosef(format string, args ...interface{}) {
	p.log(VERBOSE, format, args...)
}
