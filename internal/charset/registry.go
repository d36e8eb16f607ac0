package charset

import (
	htmlcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// entry is one known encoding. langs holds the ISO 639-2/B codes of the
// languages it is commonly used for; nil means every language.
type entry struct {
	name    Name
	enc     encoding.Encoding
	aliases []string
	langs   []string
}

var (
	westernEurope = []string{
		"eng", "fre", "ger", "ita", "spa", "por", "dut", "dan", "nor", "swe",
		"fin", "ice", "cat", "glg", "baq", "gle", "afr", "alb", "ltz",
	}
	centralEurope = []string{"cze", "slo", "pol", "hun", "slv", "hrv", "rum", "bos", "ger"}
	cyrillic      = []string{"bul", "bel", "mac", "rus", "srp", "ukr"}
	baltic        = []string{"est", "lav", "lit"}
	hebrew        = []string{"heb", "yid"}
	arabic        = []string{"ara", "per", "urd"}
	chinese       = []string{"chi"}
	japaneseLangs = []string{"jpn"}
)

var registry = []entry{
	{"utf_8", unicode.UTF8, []string{"utf8", "u8", "cp65001"}, nil},
	{"utf_16", unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), []string{"utf16"}, nil},
	{"utf_16_be", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), []string{"utf16be", "unicodebigunmarked"}, nil},
	{"utf_16_le", unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), []string{"utf16le", "unicodelittleunmarked"}, nil},
	{"utf_32", utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM), []string{"utf32"}, nil},
	{"utf_32_be", utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), []string{"utf32be"}, nil},
	{"utf_32_le", utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), []string{"utf32le"}, nil},

	{"latin_1", charmap.ISO8859_1, []string{"latin1", "latin", "l1", "iso88591", "iso8859_1", "8859", "cp819"}, westernEurope},
	{"iso8859_2", charmap.ISO8859_2, []string{"latin2", "l2", "iso88592"}, centralEurope},
	{"iso8859_3", charmap.ISO8859_3, []string{"latin3", "l3", "iso88593"}, []string{"epo", "mlt", "tur"}},
	{"iso8859_4", charmap.ISO8859_4, []string{"latin4", "l4", "iso88594"}, baltic},
	{"iso8859_5", charmap.ISO8859_5, []string{"cyrillic", "iso88595"}, cyrillic},
	{"iso8859_6", charmap.ISO8859_6, []string{"arabic", "iso88596"}, arabic},
	{"iso8859_7", charmap.ISO8859_7, []string{"greek", "greek8", "iso88597"}, []string{"gre"}},
	{"iso8859_8", charmap.ISO8859_8, []string{"hebrew", "iso88598"}, hebrew},
	{"iso8859_9", charmap.ISO8859_9, []string{"latin5", "l5", "iso88599"}, []string{"tur", "kur"}},
	{"iso8859_10", charmap.ISO8859_10, []string{"latin6", "l6", "iso885910"}, []string{"dan", "nor", "swe", "fin", "ice", "fao", "smi"}},
	{"iso8859_13", charmap.ISO8859_13, []string{"latin7", "l7", "iso885913"}, baltic},
	{"iso8859_14", charmap.ISO8859_14, []string{"latin8", "l8", "iso885914"}, []string{"gle", "wel", "gla", "bre", "cor", "glv"}},
	{"iso8859_15", charmap.ISO8859_15, []string{"latin9", "l9", "iso885915"}, westernEurope},
	{"iso8859_16", charmap.ISO8859_16, []string{"latin10", "l10", "iso885916"}, []string{"alb", "hrv", "hun", "pol", "rum", "slv"}},

	{"cp037", charmap.CodePage037, []string{"ibm037", "ibm039"}, []string{"eng"}},
	{"cp437", charmap.CodePage437, []string{"ibm437", "437"}, []string{"eng"}},
	{"cp850", charmap.CodePage850, []string{"ibm850", "850"}, westernEurope},
	{"cp852", charmap.CodePage852, []string{"ibm852", "852"}, centralEurope},
	{"cp855", charmap.CodePage855, []string{"ibm855", "855"}, cyrillic},
	{"cp858", charmap.CodePage858, []string{"ibm858", "858"}, westernEurope},
	{"cp860", charmap.CodePage860, []string{"ibm860", "860"}, []string{"por"}},
	{"cp862", charmap.CodePage862, []string{"ibm862", "862"}, hebrew},
	{"cp863", charmap.CodePage863, []string{"ibm863", "863"}, []string{"fre"}},
	{"cp865", charmap.CodePage865, []string{"ibm865", "865"}, []string{"dan", "nor"}},
	{"cp866", charmap.CodePage866, []string{"ibm866", "866"}, []string{"rus"}},
	{"cp874", charmap.Windows874, []string{"tis620", "iso885911"}, []string{"tha"}},
	{"cp1250", charmap.Windows1250, nil, centralEurope},
	{"cp1251", charmap.Windows1251, nil, cyrillic},
	{"cp1252", charmap.Windows1252, nil, westernEurope},
	{"cp1253", charmap.Windows1253, nil, []string{"gre"}},
	{"cp1254", charmap.Windows1254, nil, []string{"tur"}},
	{"cp1255", charmap.Windows1255, nil, hebrew},
	{"cp1256", charmap.Windows1256, nil, arabic},
	{"cp1257", charmap.Windows1257, nil, baltic},
	{"cp1258", charmap.Windows1258, nil, []string{"vie"}},
	{"koi8_r", charmap.KOI8R, []string{"koi8"}, []string{"rus"}},
	{"koi8_u", charmap.KOI8U, nil, []string{"ukr"}},
	{"mac_roman", charmap.Macintosh, []string{"macintosh"}, westernEurope},
	{"mac_cyrillic", charmap.MacintoshCyrillic, []string{"xmaccyrillic"}, cyrillic},

	{"shift_jis", japanese.ShiftJIS, []string{"sjis", "s_jis", "csshiftjis", "mskanji", "cp932", "ms932"}, japaneseLangs},
	{"euc_jp", japanese.EUCJP, []string{"eucjp", "ujis", "u_jis"}, japaneseLangs},
	{"iso2022_jp", japanese.ISO2022JP, []string{"csiso2022jp", "iso2022jp"}, japaneseLangs},
	{"euc_kr", korean.EUCKR, []string{"euckr", "ksc5601", "ks_c_5601_1987", "cp949", "uhc"}, []string{"kor"}},
	{"gbk", simplifiedchinese.GBK, []string{"cp936", "ms936", "gb2312", "euccn"}, chinese},
	{"gb18030", simplifiedchinese.GB18030, nil, chinese},
	{"hz", simplifiedchinese.HZGB2312, []string{"hzgb", "hzgb2312"}, chinese},
	{"big5", traditionalchinese.Big5, []string{"big5tw", "csbig5", "cp950"}, chinese},
}

// byKey indexes registry entries by the compact form of every name and alias.
var byKey = func() map[string]*entry {
	m := make(map[string]*entry)
	for i := range registry {
		e := &registry[i]
		m[compact(string(e.name))] = e
		for _, a := range e.aliases {
			m[compact(a)] = e
		}
	}
	return m
}()

// Encodings returns every canonical name in registry order.
func Encodings() []Name {
	names := make([]Name, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// Lookup resolves a label to a canonical name and its encoding. Labels are
// normalized and compared without separators. Labels the registry does not
// know are tried as IANA names and then as WHATWG labels; an encoding found
// that way reports its registry name when it has one.
func Lookup(label string) (Name, encoding.Encoding, bool) {
	key := compact(label)
	if key == "" {
		return "", nil, false
	}
	if e, ok := byKey[key]; ok {
		return e.name, e.enc, true
	}

	if enc, err := ianaindex.IANA.Encoding(label); err == nil && enc != nil {
		return nameOf(enc, func() string {
			n, _ := ianaindex.IANA.Name(enc)
			return n
		}), enc, true
	}

	if enc, name := htmlcharset.Lookup(label); enc != nil {
		return nameOf(enc, func() string { return name }), enc, true
	}

	return "", nil, false
}

// nameOf maps an encoding found outside the registry back to its registry
// name, or builds one from the fallback label.
func nameOf(enc encoding.Encoding, fallback func() string) Name {
	for _, e := range registry {
		if e.enc == enc {
			return e.name
		}
	}
	n := compact(fallback())
	if e, ok := byKey[n]; ok {
		return e.name
	}
	return Name(n)
}
