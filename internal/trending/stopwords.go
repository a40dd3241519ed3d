package trending

import "strings"

// 产品既定的英文停用词表：高频虚词加上新闻标题里的惯用填充词。
// 与发布端聚类用的词表同源，补充了前端过滤时积累的常见词。
const defaultStopWords = `
the and for that with from this have will your their about into over more than
been after says said were was are its you but they them who what when where why
how amid as of on to in by at a an it is be or we our not new his her has had
also may can could would should one two three
again against because before being below between both down during each few
here just like once only other same some such then there these those
through under until very while
news update latest breaking report reports today week year
`

// DefaultStopWords 返回内置停用词表的一份拷贝
func DefaultStopWords() []string {
	return strings.Fields(defaultStopWords)
}
