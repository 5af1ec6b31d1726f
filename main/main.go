package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/fixbuf"
	"github.com/rawbytedev/fixbuf/pkg/fixrec"
)

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1
	type callsign struct {
		Name fixbuf.Buffer[[20]byte, byte]
		Site fixbuf.Buffer[[40]byte, byte]
	}
	var rec callsign
	rec.Name.CopyFrom([]byte("HELLO"))
	rec.Site.CopyFrom([]byte("HELLO WORLD"))
	enc := fixrec.NewEncoder(0)
	var dec fixrec.Decoder
	var out callsign
	for i := 0; i < 10000; i++ {
		data, _ := enc.EncodeRecord(rec.Name.View().Raw(), rec.Site.View().Raw())
		dec.DecodeInto(data, out.Name.View(), out.Site.View())
	}
	log.Println(fixbuf.Text(out.Name.View()), fixbuf.Text(out.Site.View()))
	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}
