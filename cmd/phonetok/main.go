// phonetok converts raw transcript text into parallel character and phoneme
// token streams for speech-recognition training, and optionally builds the
// frequency-ranked vocabularies for both streams.
//
// Modes:
//
//	phonetok --input text --output phones.txt,chars.txt
//	phonetok --input text --write_vocabulary --output phn.vocab,char.vocab \
//	    --add_symbol '<blank>:0' --add_symbol '<unk>:1' --add_symbol '<sos/eos>:-1'
//	phonetok --phonemize --input text --output text.phn --field 2-
//	phonetok --interactive
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

var (
	flagInput  = flag.String("input", "-", "Input text file. \"-\" reads stdin.")
	flagOutput = flag.String("output", "-", "Output. \"-\" writes stdout; a \"phone,char\" pair of paths writes two files.")
	flagField  = flag.String("field", "", "Target columns of the input as a 1-based range, e.g. \"2-\".")

	flagTokenType = flag.String("token_type", "char_phone", "Token type. Only \"char_phone\" is supported.")
	flagDelimiter = flag.String("delimiter", "", "Field delimiter. Empty splits on whitespace runs.")

	flagSpaceSymbol   = flag.String("space_symbol", "<space>", "Token emitted for whitespace in the char stream.")
	flagJointSymbol   = flag.String("joint_symbol", "@", "Symbol joining the char and phone forms of a pre-phonemized line.")
	flagPrePhonemized = flag.Bool("pre_phonemized", false, "Input lines already carry phonemes after the joint symbol.")

	flagCharNonLinguisticSymbols   = flag.String("char_non_linguistic_symbols", "", "File with char-stream non-linguistic symbols, one per line.")
	flagPhoneNonLinguisticSymbols  = flag.String("phone_non_linguistic_symbols", "", "File with phone-stream non-linguistic symbols, one per line.")
	flagRemoveNonLinguisticSymbols = flag.Bool("remove_non_linguistic_symbols", false, "Drop non-linguistic symbols from the output.")
	flagCleaner                    = flag.String("cleaner", "", "Text cleaner: \"\", \"nfc\", \"nfkc\" or \"whitespace\".")

	flagLexicon         = flag.String("lexicon", "", "Pronunciation lexicon file (word<TAB>phonemes) for G2P.")
	flagCompiledLexicon = flag.String("compiled_lexicon", "", "Compiled (msgpack) lexicon for G2P; faster to load.")
	flagDownloadCMUDict = flag.Bool("download_cmudict", false, "Download the CMU pronouncing dictionary for G2P.")
	flagCacheDir        = flag.String("cache_dir", "~/.cache/phonetok", "Directory to cache downloaded dictionaries.")

	flagWriteVocabulary = flag.Bool("write_vocabulary", false, "Write ranked token lists instead of tokenized text per line.")
	flagCharVocabSize   = flag.Int("char_vocabulary_size", 0, "Char vocabulary size cap. 0 disables the cap.")
	flagPhoneVocabSize  = flag.Int("phone_vocabulary_size", 0, "Phone vocabulary size cap. 0 disables the cap.")
	flagCutoff          = flag.Int("cutoff", 0, "Drop tokens whose count is <= cutoff in vocabulary mode.")

	flagAddSymbol         stringList
	flagAddNonSplitSymbol stringList

	flagPhonemize   = flag.Bool("phonemize", false, "Join each input line with its G2P phonemes instead of tokenizing.")
	flagInteractive = flag.Bool("interactive", false, "Interactive tokenizer demo.")
)

func init() {
	flag.Var(&flagAddSymbol, "add_symbol",
		"Inject a symbol into the vocabularies, e.g. --add_symbol '<blank>:0'. Repeatable.")
	flag.Var(&flagAddNonSplitSymbol, "add_nonsplit_symbol",
		"Inject a symbol that is also never split during tokenization, e.g. --add_nonsplit_symbol '<sc>:2'. Repeatable.")
}

// stringList collects the values of a repeatable flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	err := exceptions.TryCatch[error](func() {
		if *flagInteractive {
			p := tea.NewProgram(newUIModel())
			if _, err := p.Run(); err != nil {
				exceptions.Panicf("interactive mode: %v", err)
			}
			return
		}
		if *flagPhonemize {
			must0(runPhonemize())
			return
		}
		must0(run())
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %+v\n", err)
		os.Exit(1)
	}
}

func must0(err error) {
	if err != nil {
		panic(err)
	}
}
